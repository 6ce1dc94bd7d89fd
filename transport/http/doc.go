// Package http sends ACI actions over HTTP and HTTPS.
//
// Actions go to the root path of the server. With GET, the default, the
// parameters make up the query string; with POST they are sent as a form
// body. Either way parameters keep the order they were added in and are
// encoded with the server's charset.
package http
