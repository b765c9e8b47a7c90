package pgsql

import (
	portsrepo "github.com/SscSPs/smb_books/internal/core/ports/repositories"
)

// NewRepositoryProvider wires every repository to the same pool so they can
// share transactions through the context.
func NewRepositoryProvider(dbPool PgxPool) portsrepo.RepositoryProvider {
	base := &BaseRepository{Pool: dbPool}

	return portsrepo.RepositoryProvider{
		TxManager:   base,
		AccountRepo: NewAccountRepository(dbPool),
		JournalRepo: NewJournalRepository(dbPool),
		BillRepo:    NewBillRepository(dbPool),
		InvoiceRepo: NewInvoiceRepository(dbPool),
	}
}
