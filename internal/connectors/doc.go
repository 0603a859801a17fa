// Package connectors holds the Connector implementations that locate
// requirement documents. The filesystem connector discovers and watches
// documents under a local directory and reads single files.
//
// The CLI builds connectors through a driven.ConnectorFactory, one per
// comparison root.
package connectors
