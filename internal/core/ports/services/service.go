package services

// ServiceContainer holds instances of all the application services.
// Handlers receive their dependencies from here.
type ServiceContainer struct {
	Account            AccountSvcFacade
	Journal            JournalSvcFacade
	Bill               BillSvcFacade
	Invoice            InvoiceSvcFacade
	TokenService       TokenSvcFacade
	GoogleOAuthHandler GoogleOAuthHandlerSvcFacade
}
