// Package cmd/zaika provides the Zaika storefront CLI.
//
// Install once:
//
//	go install github.com/ananyakrishnan/zaika/cmd/zaika@latest
//
// Everyday use:
//
//	zaika serve                      # run the bundled dev backend
//	zaika menu -s paneer             # browse the menu
//	zaika cart add "Paneer Tikka"    # build a cart
//	zaika register / zaika login     # get a session
//	zaika checkout -a "..." -p "..." # place the order
//	zaika orders                     # order history
//	zaika orders cancel '#a1b2c3d4'  # cancel while still pending/confirmed
//	zaika orders watch               # live status stream over websocket
//
// The cart and session persist between runs under the configured state disk
// (".zaika" on local disk by default), so the cart you build today is still
// there tomorrow.
package main
