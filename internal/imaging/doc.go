// Package imaging probes image dimensions and performs the optional
// recompression pass over the process directory.
package imaging
