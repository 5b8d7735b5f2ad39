// Package play serves the masterbait.play.v1.PlayService gRPC API.
//
// Messages travel as JSON under the "json" content subtype, so clients must
// dial with DialOptions or pass CallOptions on each call.
package play
