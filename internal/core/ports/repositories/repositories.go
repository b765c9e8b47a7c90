package repositories

// RepositoryProvider holds all repository interfaces needed by services.
type RepositoryProvider struct {
	TxManager   TransactionManager
	AccountRepo AccountRepositoryFacade
	JournalRepo JournalRepositoryFacade
	BillRepo    BillRepositoryFacade
	InvoiceRepo InvoiceRepositoryFacade
}
