// Package xmltree provides a small mutable XML element tree with comments,
// text and tail character data, and XPath selection over it.
package xmltree
