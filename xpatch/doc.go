// Package xpatch compiles the change records of libdiff into XPath based
// patch documents, and applies such documents.
//
// A patch document is a <data> element holding specs:
//
//	<data>
//	  <xpath expr="/form/field[@name='a']" position="after">
//	    <field name="b"/>
//	  </xpath>
//	  <xpath expr="//field[@name='c']" position="attributes">
//	    <attribute name="invisible">1</attribute>
//	  </xpath>
//	</data>
//
// Positions are inside, before, after, replace and attributes. An element
// moved from elsewhere in the tree appears in a spec body as
// <xpath expr="..." position="move"/>; a replace spec with an empty body
// removes its target.
//
// Expressions are computed against the tree as it stands once the previous
// specs are applied, so specs must be applied in document order.
package xpatch
