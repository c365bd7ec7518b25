/*
Jsonconfig implements configuration, reading json into an ice Module.

To use:

1) Create the Schema. List your configurable Implementations. Each Implementations
can be backed by several named Implementations.
 2. Schema.Parse parses bytes and creates a Configuration.
    a) for each Implementations, pick which Implementation.
    b) json.Unmarshal the json into a copy of that Implementation
    c) Implementation can now be used as a Module or json.Marshal'ed to print its configuration
 3. Configuration is an ice Module that installs each Implementation

Container definitions are Configurations: a container's config location names a
resource (read through an AssetFunc by GetConfigText) whose text is parsed against
the Schema its locator was given.

Example:
1) Create the Schema

	schema := jsonconfig.Schema(map[string]jsonconfig.Implementations{
	 "InvoiceService": {
	  "logging": &services.LoggingInvoiceConfig{},
	  "": &services.LoggingInvoiceConfig{Type: "logging"},
	 },
	})

2) Parse

	mod, _ := schema.Parse([]byte(`{
	 "InvoiceService": {
	  "Type": "logging",
	  "Prefix": "INV"
	 }
	}`))

3) Install the Configuration

	bag.InstallModule(mod)
*/
package jsonconfig
