package transit

type DataSource struct {
	OriginalFormat string `groups:"internal"`
	Dataset        string `groups:"internal"`
	Identifier     string `groups:"internal"`
}
