// Package native contains every binding to the markdown-academic shared
// library. No other package touches raw native pointers.
//
// # Design Principles
//
//  1. Isolation: dynamic loading, symbol binding and the C struct layouts live
//     here. The public package only sees Go values and the Calls table.
//
//  2. No cgo: the library is opened at runtime through purego, so the module
//     cross-compiles and builds without a C toolchain.
//
//  3. Fixed ABI: RenderRequest, PdfRequest, RenderResult and PdfResult mirror
//     the engine's C structs field for field. Enums and booleans are C int
//     (int32), strings are NUL-terminated and nil when absent.
//
//  4. Ownership: memory returned by the engine is only read through GoString
//     and GoBytes, which copy. Freeing is the caller's job and goes through the
//     matching free entry point in Calls.
//
// # Threading
//
// Library is immutable after Open. The engine gives no reentrancy guarantee
// for a single parsed document, so document handles must not be shared across
// goroutines without external synchronization.
package native
