package duckchat

import "net/http"

// Upstream header names.
const (
	headerVQD       = "x-vqd-4"
	headerVQDHash   = "x-vqd-hash-1"
	headerVQDAccept = "x-vqd-accept"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:129.0) Gecko/20100101 Firefox/129.0"

// acceptEncoding lists the codings decodeBody understands. Brotli is left out.
const acceptEncoding = "gzip, deflate, zstd"

// browserHeaders is the fixed header set sent on both upstream calls.
var browserHeaders = [][2]string{
	{"Accept", "*/*"},
	{"Accept-Language", "en-US,en;q=0.5"},
	{"Accept-Encoding", acceptEncoding},
	{"Referer", "https://duckduckgo.com/"},
	{"Cache-Control", "no-store"},
	{headerVQDAccept, "1"},
	{"Connection", "keep-alive"},
	{"Cookie", "dcm=3"},
	{"Sec-Fetch-Dest", "empty"},
	{"Sec-Fetch-Mode", "cors"},
	{"Sec-Fetch-Site", "same-origin"},
	{"Priority", "u=4"},
	{"Pragma", "no-cache"},
	{"TE", "trailers"},
}

// setBrowserHeaders applies the browser header set to h.
func setBrowserHeaders(h http.Header, userAgent string) {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	h.Set("User-Agent", userAgent)
	for _, kv := range browserHeaders {
		h.Set(kv[0], kv[1])
	}
}
