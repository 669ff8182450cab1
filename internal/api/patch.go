package api

import "github.com/beevik/etree"

// Patch rewrites an outgoing envelope right before it is sent. Patches run
// in registration order and may return the same document they were given.
type Patch func(operation string, doc *etree.Document) *etree.Document

// PatchItemOptionName sets item_option_name="" on every item of an
// InsertIpayOrder call that does not carry the attribute. iPay rejects items
// without it but accepts an empty value. Items that already have the
// attribute, empty or not, are left alone. The call is recognised by the
// body element; the operation name is not consulted.
func PatchItemOptionName(_ string, doc *etree.Document) *etree.Document {
	call := operationElement(doc)
	if call == nil || call.Tag != OpInsertIpayOrder {
		return doc
	}

	params := call.ChildElements()
	if len(params) < 2 {
		return doc
	}
	for _, item := range params[1].ChildElements() {
		if item.SelectAttr(attrItemOptionName) == nil {
			item.CreateAttr(attrItemOptionName, "")
		}
	}
	return doc
}
