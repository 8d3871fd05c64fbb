// Package output writes a compiled content set to the output root.
//
// Materializer renders one page per item into <derived-dir>/index.html.
// StaticCopier mirrors every non-content file of the content root verbatim.
// A failure to render one item is recorded and the batch continues; a
// failure to create a directory or write a page aborts the pass.
package output
