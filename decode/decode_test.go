package decode_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/acikit/aci/decode"
	"github.com/acikit/aci/transport"
)

const statusResponse = `<?xml version="1.0" encoding="UTF-8"?>
<autnresponse xmlns:autn="http://schemas.autonomy.com/aci/">
	<action>GETSTATUS</action>
	<response>SUCCESS</response>
	<responsedata>
		<product>Content</product>
		<version>12.0.0</version>
		<autn:uptime>1234</autn:uptime>
	</responsedata>
</autnresponse>`

const errorResponse = `<?xml version="1.0" encoding="UTF-8"?>
<autnresponse xmlns:autn="http://schemas.autonomy.com/aci/">
	<action>WIBBLE</action>
	<response>ERROR</response>
	<responsedata>
		<autn:error>
			<autn:errorid>AXEFOO-2</autn:errorid>
			<autn:rawerrorid>0x2</autn:rawerrorid>
			<autn:errorstring>ERRORUNKNOWNACTION</autn:errorstring>
			<autn:errordescription>The action is not recognised</autn:errordescription>
			<autn:errorcode>ERRORUNKNOWNACTION</autn:errorcode>
			<autn:errortime>19 Oct 26 10:00:00</autn:errortime>
		</autn:error>
	</responsedata>
</autnresponse>`

func stream(body []byte, contentType string) transport.ResponseStream {
	h := http.Header{}
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	return transport.NewStream(io.NopCloser(bytes.NewReader(body)), http.StatusOK, h)
}

type failingReader struct{ err error }

func (r failingReader) Read([]byte) (int, error) { return 0, r.err }

func TestBytes(t *testing.T) {
	want := []byte{0x01, 0x02, 0x03}
	have, err := decode.Bytes().Decode(context.Background(), stream(want, "image/png"))
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(want, have) {
		t.Errorf("want %v, have %v", want, have)
	}
}

func TestBytesIgnoresErrorResponses(t *testing.T) {
	have, err := decode.Bytes().Decode(context.Background(), stream([]byte(errorResponse), "text/xml"))
	if err != nil {
		t.Fatal(err)
	}
	if want := errorResponse; want != string(have) {
		t.Errorf("want %q, have %q", want, have)
	}
}

func TestBytesReadFailure(t *testing.T) {
	cause := errors.New("connection reset")
	s := transport.NewStream(io.NopCloser(failingReader{cause}), 200, nil)

	_, err := decode.Bytes().Decode(context.Background(), s)

	var de *decode.Error
	if !errors.As(err, &de) {
		t.Fatalf("want *decode.Error, have %v", err)
	}
	if want, have := decode.CodeRead, de.Code; want != have {
		t.Errorf("want %v, have %v", want, have)
	}
	if !errors.Is(err, cause) {
		t.Errorf("cause not reachable from %v", err)
	}
}

func TestString(t *testing.T) {
	latin1 := []byte{'c', 'a', 'f', 0xe9}

	have, err := decode.String("UTF-8").Decode(context.Background(), stream(latin1, "text/plain; charset=ISO-8859-1"))
	if err != nil {
		t.Fatal(err)
	}
	if want := "café"; want != have {
		t.Errorf("want %q, have %q", want, have)
	}

	have, err = decode.String("ISO-8859-1").Decode(context.Background(), stream(latin1, "text/plain"))
	if err != nil {
		t.Fatal(err)
	}
	if want := "café"; want != have {
		t.Errorf("fallback charset: want %q, have %q", want, have)
	}

	have, err = decode.String("").Decode(context.Background(), stream(nil, ""))
	if err != nil {
		t.Fatal(err)
	}
	if want := ""; want != have {
		t.Errorf("want %q, have %q", want, have)
	}
}

func TestStringUnknownCharset(t *testing.T) {
	_, err := decode.String("UTF-8").Decode(context.Background(), stream([]byte("x"), "text/plain; charset=wibble"))
	var de *decode.Error
	if !errors.As(err, &de) || de.Code != decode.CodeMalformed {
		t.Fatalf("want malformed decode error, have %v", err)
	}
}

type status struct {
	Action  string `xml:"action"`
	Product string `xml:"responsedata>product"`
	Version string `xml:"responsedata>version"`
	Uptime  int    `xml:"responsedata>uptime"`
}

func TestXML(t *testing.T) {
	have, err := decode.XML[status]().Decode(context.Background(), stream([]byte(statusResponse), "text/xml"))
	if err != nil {
		t.Fatal(err)
	}
	want := status{Action: "GETSTATUS", Product: "Content", Version: "12.0.0", Uptime: 1234}
	if want != have {
		t.Errorf("want %+v, have %+v", want, have)
	}
}

func TestXMLLatin1(t *testing.T) {
	body := []byte("<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n" +
		"<autnresponse><action>GETSTATUS</action><response>SUCCESS</response>" +
		"<responsedata><product>caf\xe9</product></responsedata></autnresponse>")

	have, err := decode.XML[status]().Decode(context.Background(), stream(body, "text/xml"))
	if err != nil {
		t.Fatal(err)
	}
	if want := "café"; want != have.Product {
		t.Errorf("want %q, have %q", want, have.Product)
	}

	r, err := decode.Envelope().Decode(context.Background(), stream(body, "text/xml"))
	if err != nil {
		t.Fatal(err)
	}
	if !r.Succeeded() {
		t.Errorf("want success, have %q", r.Response)
	}
}

func TestXMLUnknownDeclaredCharset(t *testing.T) {
	body := []byte(`<?xml version="1.0" encoding="wibble"?><autnresponse><response>SUCCESS</response></autnresponse>`)
	_, err := decode.XML[status]().Decode(context.Background(), stream(body, "text/xml"))
	var de *decode.Error
	if !errors.As(err, &de) || de.Code != decode.CodeMalformed {
		t.Fatalf("want malformed decode error, have %v", err)
	}
}

func TestXMLServerError(t *testing.T) {
	_, err := decode.XML[status]().Decode(context.Background(), stream([]byte(errorResponse), "text/xml"))

	var de *decode.Error
	if !errors.As(err, &de) {
		t.Fatalf("want *decode.Error, have %v", err)
	}
	if want, have := decode.CodeServerError, de.Code; want != have {
		t.Errorf("want %v, have %v", want, have)
	}
	se, ok := decode.AsServerError(err)
	if !ok {
		t.Fatalf("no ServerError in %v", err)
	}
	want := decode.ServerError{
		ID:          "AXEFOO-2",
		RawID:       "0x2",
		ErrorString: "ERRORUNKNOWNACTION",
		Description: "The action is not recognised",
		Code:        "ERRORUNKNOWNACTION",
		Time:        "19 Oct 26 10:00:00",
	}
	if want != *se {
		t.Errorf("want %+v, have %+v", want, *se)
	}
	if want, have := "decode (server error): AXEFOO-2: The action is not recognised", err.Error(); want != have {
		t.Errorf("want %q, have %q", want, have)
	}
}

func TestXMLMalformed(t *testing.T) {
	for _, body := range []string{
		"not xml at all",
		"<html><body>wrong root</body></html>",
		"<autnresponse><response>SUCCESS</response>",
	} {
		_, err := decode.XML[status]().Decode(context.Background(), stream([]byte(body), "text/xml"))
		var de *decode.Error
		if !errors.As(err, &de) || de.Code != decode.CodeMalformed {
			t.Errorf("%q: want malformed decode error, have %v", body, err)
		}
		if _, ok := decode.AsServerError(err); ok {
			t.Errorf("%q: malformed payload reported as server error", body)
		}
	}
}

func TestEnvelope(t *testing.T) {
	r, err := decode.Envelope().Decode(context.Background(), stream([]byte(statusResponse), "text/xml"))
	if err != nil {
		t.Fatal(err)
	}
	if !r.Succeeded() {
		t.Errorf("want success, have %q", r.Response)
	}
	if want, have := "GETSTATUS", r.Action; want != have {
		t.Errorf("want %q, have %q", want, have)
	}
	if !strings.Contains(string(r.Data.Inner), "<product>Content</product>") {
		t.Errorf("responsedata not captured: %q", r.Data.Inner)
	}
}
