package cnst

const (
	// ApiServerYaml is the default configuration file name
	ApiServerYaml = "apiserver.yaml"
)
