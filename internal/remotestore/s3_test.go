package remotestore

import "testing"

func TestKeyPrefix(t *testing.T) {
	t.Parallel()

	cases := []struct {
		prefix string
		locale string
		want   string
	}{
		{prefix: "", locale: "", want: ""},
		{prefix: "locales", locale: "", want: "locales/"},
		{prefix: "locales", locale: "en-GB", want: "locales/en-GB/"},
		{prefix: "/locales/", locale: "de", want: "locales/de/"},
	}

	for _, tc := range cases {
		store := &Store{cfg: Config{Prefix: tc.prefix}}
		if got := store.keyPrefix(tc.locale); got != tc.want {
			t.Errorf("keyPrefix(%q) with prefix %q = %q, want %q", tc.locale, tc.prefix, got, tc.want)
		}
	}
}
