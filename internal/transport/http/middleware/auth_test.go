package middleware

import (
	"encoding/base64"
	"testing"
)

func TestBasicCredentials(t *testing.T) {
	encode := func(s string) string {
		return base64.StdEncoding.EncodeToString([]byte(s))
	}

	username, password, err := basicCredentials("Basic " + encode("alice.smith:password1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if username != "alice.smith" || password != "password1" {
		t.Fatalf("parsed %q / %q", username, password)
	}

	// password may itself contain a colon, only the first one splits
	_, password, err = basicCredentials("Basic " + encode("alice.smith:pass:word"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if password != "pass:word" {
		t.Fatalf("parsed password %q", password)
	}

	// scheme comparison ignores case
	if _, _, err := basicCredentials("basic " + encode("a:b")); err != nil {
		t.Fatalf("lowercase scheme rejected: %v", err)
	}
}

func TestBasicCredentialsRejections(t *testing.T) {
	cases := []struct {
		name   string
		header string
		why    string
	}{
		{"empty header", "", "authorization header not found"},
		{"no payload", "Basic", "invalid authorization header"},
		{"wrong scheme", "Bearer abc", "authorization type not Basic"},
		{"bad base64", "Basic %%%", "invalid authorization credentials"},
		{"no separator", "Basic " + base64.StdEncoding.EncodeToString([]byte("nocolon")), "invalid authorization credentials"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := basicCredentials(tc.header)
			if err == nil {
				t.Fatal("expected an error")
			}
			if len(err.Args) != 1 || err.Args[0].Key != "why" || err.Args[0].Value != tc.why {
				t.Fatalf("unexpected args: %+v", err.Args)
			}
		})
	}
}
