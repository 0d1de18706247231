package datasets

// DataSource groups datasets published by one provider. Dataset identifiers
// are prefixed with the source identifier when registered.
type DataSource struct {
	Identifier string    `yaml:"identifier"`
	Region     string    `yaml:"region"`
	Provider   Provider  `yaml:"provider"`
	Datasets   []DataSet `yaml:"datasets"`

	SourceAuthentication *SourceAuthentication `yaml:"sourceAuthentication"`
}
