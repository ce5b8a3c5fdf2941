package query

type TagAutocompleteQuery struct {
	Query string
	Limit int
}

type TagAutocompleteQueryResult struct {
	Tags []string `json:"tags"`
}
