// Package connectors provides implementations of the Connector interface
// for article sources. Each connector knows how to enumerate and read raw
// article files from a specific source type.
package connectors
