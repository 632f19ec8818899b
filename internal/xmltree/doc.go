// Package xmltree decodes response bodies into an immutable, queryable element tree.
//
// Trees are backed by a github.com/clbanning/mxj/v2 map. Element paths use "/" separators
// and are relative to the document root, so "Error/Code" addresses the <Code> child of an
// <Error> root. The same map is exposed to JSONPath queries ("$.Error.Code").
package xmltree
