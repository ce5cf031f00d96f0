// Package azure adapts the Azure Storage and Cosmos DB SDK clients to the
// narrow interfaces the health probes and feature modules consume. Nothing
// outside this package imports the SDKs directly.
package azure
