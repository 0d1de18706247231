package datasets

type DataSet struct {
	Identifier    string        `yaml:"identifier" validate:"required"`
	DataSourceRef string        `yaml:"-" json:"-"`
	Format        DataSetFormat `yaml:"format" validate:"required"`

	Provider Provider `yaml:"provider"`

	Source               string               `yaml:"source" validate:"required"`
	SourceAuthentication SourceAuthentication `yaml:"sourceAuthentication" json:"-"`

	CustomConfig map[string]string `yaml:"customConfig"`
}

type SourceAuthentication struct {
	Query  map[string]string `yaml:"query"`
	Header map[string]string `yaml:"header"`
}

type DataSetFormat string

const (
	DataSetFormatTriMetStopEvents  DataSetFormat = "trimet-stopevents-html"
	DataSetFormatTriMetBreadcrumbs DataSetFormat = "trimet-relpos-csv"
	DataSetFormatTriMetTrip        DataSetFormat = "trimet-trip-csv"
	DataSetFormatUSAFactsCOVID     DataSetFormat = "usafacts-covid-csv"
	DataSetFormatACSCounty         DataSetFormat = "acs-county-csv"
	DataSetFormatACSTract          DataSetFormat = "acs-tract-csv"
	DataSetFormatDepartments       DataSetFormat = "departments-csv"
	DataSetFormatRoles             DataSetFormat = "roles-salaries-csv"
)

type Provider struct {
	Name    string `yaml:"name"`
	Website string `yaml:"website"`
}
