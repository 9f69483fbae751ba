package api

// GJSON paths for the help document.
const (
	PathEndpoints         = "endpoints"
	PathEndpointOperation = "operation"
	PathEndpointURL       = "url"
	PathEndpointHandler   = "handler"
)
