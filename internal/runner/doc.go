// Package runner drives one processing pass over the process directory:
// archive extraction, subdirectory flattening, optional recompression, then
// sequential classification and placement of every eligible image, with
// failures routed to the failed directory and a summary notification at the
// end.
package runner
