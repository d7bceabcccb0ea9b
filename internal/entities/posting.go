package entities

// Posting is the intermediate shape every source adapter produces before
// classification. It is never persisted; the harvester turns it into a Job.
type Posting struct {
	Title        string
	Location     string
	CategoryHint string
	ApplyLink    string
	Description  string
	JobTypeHint  string
}
