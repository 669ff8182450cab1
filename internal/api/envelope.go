package api

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"

	"github.com/beevik/etree"
	"github.com/pkg/errors"
)

const maxErrorBody = 512

// newTicketHeader builds the EncryptedTicket SOAP header. iPay ignores the
// ticket when it is sent through the header declared in the WSDL, so the
// element is assembled by hand in the Security namespace.
func newTicketHeader(ipayKey string) *etree.Element {
	ticket := etree.NewElement("s2:EncryptedTicket")
	ticket.CreateAttr("xmlns:s2", securityNamespace)
	ticket.CreateElement("s2:Value").SetText(ipayKey)
	return ticket
}

// newEnvelope wraps the marshalled operation call in a SOAP 1.1 envelope
// carrying the ticket header.
func newEnvelope(ticket *etree.Element, call any) (*etree.Document, error) {
	payload, err := xml.Marshal(call)
	if err != nil {
		return nil, errors.Wrap(err, "ipay: marshal request")
	}

	body := etree.NewDocument()
	if err := body.ReadFromBytes(payload); err != nil {
		return nil, errors.Wrap(err, "ipay: parse marshalled request")
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	env := doc.CreateElement("soap:Envelope")
	env.CreateAttr("xmlns:soap", soapNamespace)
	env.CreateElement("soap:Header").AddChild(ticket.Copy())
	env.CreateElement("soap:Body").AddChild(body.Root())
	return doc, nil
}

// operationElement returns the first element inside the envelope body.
func operationElement(doc *etree.Document) *etree.Element {
	root := doc.Root()
	if root == nil || root.Tag != "Envelope" {
		return nil
	}
	body := root.SelectElement("Body")
	if body == nil {
		return nil
	}
	children := body.ChildElements()
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

// StatusError is returned when the service answers with something that is
// neither a SOAP result nor a SOAP fault.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("ipay: unexpected status %d - %s", e.StatusCode, e.Body)
}

func newStatusError(status int, body []byte) *StatusError {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBody {
		s = s[:maxErrorBody]
	}
	return &StatusError{StatusCode: status, Body: s}
}

// parseResponse turns a raw HTTP answer into a Response. A SOAP fault is a
// value, whatever the HTTP status it came with.
func parseResponse(op string, status int, raw []byte) (*Response, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(raw); err != nil {
		return nil, newStatusError(status, raw)
	}
	root := doc.Root()
	if root == nil || root.Tag != "Envelope" || root.SelectElement("Body") == nil {
		return nil, newStatusError(status, raw)
	}

	resp := &Response{Operation: op, StatusCode: status}
	el := operationElement(doc)
	if el != nil && el.Tag == "Fault" {
		resp.Fault = newFault(el)
		return resp, nil
	}
	if status != http.StatusOK {
		return nil, newStatusError(status, raw)
	}
	if el == nil {
		resp.Result = &Result{}
		return resp, nil
	}

	result, err := newResult(el)
	if err != nil {
		return nil, err
	}
	resp.Result = result
	return resp, nil
}

func newFault(el *etree.Element) *Fault {
	f := &Fault{}
	if c := el.SelectElement("faultcode"); c != nil {
		f.Code = strings.TrimSpace(c.Text())
	}
	if c := el.SelectElement("faultstring"); c != nil {
		f.Message = strings.TrimSpace(c.Text())
	}
	if c := el.SelectElement("faultactor"); c != nil {
		f.Actor = strings.TrimSpace(c.Text())
	}
	if c := el.SelectElement("detail"); c != nil {
		if s, err := detach(c).WriteToString(); err == nil {
			f.Detail = s
		}
	}
	return f
}

func newResult(el *etree.Element) (*Result, error) {
	raw, err := detach(el).WriteToBytes()
	if err != nil {
		return nil, errors.Wrapf(err, "ipay: copy %s payload", el.Tag)
	}

	value := strings.TrimSpace(el.Text())
	if children := el.ChildElements(); len(children) == 1 && len(children[0].ChildElements()) == 0 {
		value = strings.TrimSpace(children[0].Text())
	}
	return &Result{Name: el.Tag, Raw: raw, Value: value}, nil
}

// detach copies el into a document of its own. Namespace declarations in
// scope on its ancestors are repeated on the copy so prefixed names still
// resolve; the nearest declaration of a prefix wins.
func detach(el *etree.Element) *etree.Document {
	cp := el.Copy()
	for p := el.Parent(); p != nil; p = p.Parent() {
		for _, a := range p.Attr {
			if !isNamespaceDecl(a) || hasNamespaceDecl(cp, a.FullKey()) {
				continue
			}
			cp.CreateAttr(a.FullKey(), a.Value)
		}
	}
	d := etree.NewDocument()
	d.SetRoot(cp)
	return d
}

func isNamespaceDecl(a etree.Attr) bool {
	return a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns")
}

func hasNamespaceDecl(el *etree.Element, key string) bool {
	for _, a := range el.Attr {
		if isNamespaceDecl(a) && a.FullKey() == key {
			return true
		}
	}
	return false
}
