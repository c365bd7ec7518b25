/*
Package locator hands out shared, reference-counted containers by name.

A Registry maps selectors to Locators. A selector names a locator configuration:
a resource (or literal JSON) listing the containers that locator knows about:

	{
	 "Contexts": {
	  "esb.parent":   {"Type": "context", "ConfigLocation": "parent.json"},
	  "esb.services": {"Type": "context", "ConfigLocation": "services.json", "Parent": "esb.parent"},
	  "esb.plain":    {"Type": "factory", "ConfigLocation": "services.json"}
	 }
	}

UseContext(key) returns a Reference. The first Reference to a key creates the
container (acquiring its parent first) and refreshes it; later ones share it. When the
last Reference is released the container is closed and its parent Reference released.
Every Reference must be released exactly once.
*/
package locator
