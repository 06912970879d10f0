package integration_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

var keysToIgnore = map[string]struct{}{
	"timestamp": {},
	"requestId": {},
}

var wizardIDRX = regexp.MustCompile(`name="wizard_id" value="([^"]+)"`)

// browser is a visitor with its own cookie jar. Redirects are followed the
// way a browser follows them after a form post.
type browser struct {
	t       testing.TB
	baseURL string
	client  *http.Client
}

type page struct {
	Status int
	Body   string
	Header http.Header
	URL    string
}

func newBrowser(t testing.TB, baseURL string) *browser {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &browser{
		t:       t,
		baseURL: baseURL,
		client:  &http.Client{Jar: jar},
	}
}

func (b *browser) get(path string) *page {
	b.t.Helper()

	res, err := b.client.Get(b.baseURL + path)
	require.NoError(b.t, err)

	return b.read(res)
}

func (b *browser) post(path string, form url.Values) *page {
	b.t.Helper()

	res, err := b.client.PostForm(b.baseURL+path, form)
	require.NoError(b.t, err)

	return b.read(res)
}

// wizardPost posts form on behalf of the wizard currently shown on p.
func (b *browser) wizardPost(p *page, path string, values map[string]string) *page {
	b.t.Helper()

	form := url.Values{"wizard_id": {p.wizardID()}}
	for k, v := range values {
		form.Set(k, v)
	}

	return b.post(path, form)
}

func (b *browser) read(res *http.Response) *page {
	b.t.Helper()
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(b.t, err)

	return &page{
		Status: res.StatusCode,
		Body:   string(body),
		Header: res.Header,
		URL:    strings.TrimPrefix(res.Request.URL.String(), b.baseURL),
	}
}

func (p *page) wizardID() string {
	m := wizardIDRX.FindStringSubmatch(p.Body)
	if m == nil {
		return ""
	}

	return m[1]
}

func compareResponse(t *testing.T, body string, expectedResponse string) {
	var actual map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &actual))

	cleanMap(actual)

	var expected map[string]any
	require.NoError(t, json.Unmarshal([]byte(expectedResponse), &expected))

	// ignore indetermistic fields while comparing
	opts := cmpopts.IgnoreMapEntries(func(k string, _ any) bool {
		_, ok := keysToIgnore[k]
		return ok
	})

	if diff := cmp.Diff(expected, actual, opts); diff != "" {
		t.Errorf("response mismatch (-want +got):\n%s", diff)
	}
}

func cleanMap(m map[string]any) {
	for k := range m {
		if _, ok := keysToIgnore[k]; ok {
			delete(m, k)
			continue
		}
		if nested, ok := m[k].(map[string]any); ok {
			cleanMap(nested)
		}
	}
}
