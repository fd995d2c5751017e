package store

// Stores bundles all store implementations over a shared DBTX.
// Bind it to a pool for regular access or to a transaction via the
// service-layer TxRunner.
type Stores struct {
	db DBTX
}

func NewStores(db DBTX) *Stores {
	return &Stores{db: db}
}

func (s *Stores) Inquiries() InquiryStore {
	return newInquiryStore(s.db)
}

func (s *Stores) Leads() LeadStore {
	return newLeadStore(s.db)
}

func (s *Stores) Listings() ListingStore {
	return newListingStore(s.db)
}

func (s *Stores) AgentTasks() AgentTaskStore {
	return newAgentTaskStore(s.db)
}

func (s *Stores) Profiles() ProfileStore {
	return newProfileStore(s.db)
}

func (s *Stores) QuoteRequests() QuoteRequestStore {
	return newQuoteRequestStore(s.db)
}

func (s *Stores) QuoteResponses() QuoteResponseStore {
	return newQuoteResponseStore(s.db)
}
