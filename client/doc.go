// Package client calls promptserve pipelines and extracts display text
// from their responses.
//
// The "output" field of an invoke response is either a string (text
// models) or a message object (chat models). Output decodes it into one
// of three kinds at the JSON boundary so callers never inspect raw shapes:
//
//	out, err := c.Essay(ctx, "oceans")
//	switch out.Kind {
//	case client.KindText, client.KindMessage:
//	    fmt.Println(out.Text())
//	case client.KindOther:
//	    // tolerated; Text() is ""
//	}
//
// Call is the user-facing boundary: it turns every failure into exactly
// one notification and reports "no result" with ok == false, which is
// distinct from a successful empty text.
package client
