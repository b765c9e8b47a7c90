package services

import (
	portsrepo "github.com/SscSPs/smb_books/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/smb_books/internal/core/ports/services"
	"github.com/SscSPs/smb_books/internal/platform/config"
)

// NewServiceContainer wires every service from the repositories. tracker may be nil.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, tracker EventTracker) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	journalOpts := []JournalServiceOption{
		WithSuspenseAccountCode(cfg.SuspenseAccountCode),
		WithLegacyAutoBalance(cfg.LegacyAutoBalance),
	}
	if tracker != nil {
		journalOpts = append(journalOpts, WithEventTracker(tracker))
	}

	container.Account = NewAccountService(repos.AccountRepo)
	container.Journal = NewJournalService(repos.JournalRepo, repos.AccountRepo, journalOpts...)

	// documents post through the journal service so every journal is validated the same way
	container.Bill = NewBillService(repos.TxManager, repos.BillRepo, container.Journal)
	container.Invoice = NewInvoiceService(repos.TxManager, repos.InvoiceRepo, container.Journal)

	container.TokenService = NewTokenService(cfg)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}
