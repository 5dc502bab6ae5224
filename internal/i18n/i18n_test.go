package i18n

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestTFallsBackToDefaultLocaleAndKey(t *testing.T) {
	if got := T("fr-FR", "error.form_not_found"); got != messages[LocaleEnUS]["error.form_not_found"] {
		t.Fatalf("expected english fallback, got %s", got)
	}
	if got := T(LocaleIDID, "error.not_defined"); got != "error.not_defined" {
		t.Fatalf("expected key fallback, got %s", got)
	}
}

func TestLocalesShareKeys(t *testing.T) {
	for key := range messages[DefaultLocale] {
		for _, locale := range supportedLocales {
			if _, ok := messages[locale][key]; !ok {
				t.Fatalf("locale %s missing key %s", locale, key)
			}
		}
	}
}

func TestNormalizeLocale(t *testing.T) {
	cases := map[string]string{
		"":      LocaleEnUS,
		"zh_CN": LocaleZhCN,
		"id":    LocaleIDID,
		"in-ID": LocaleIDID,
		"en-GB": LocaleEnUS,
		"fr":    LocaleEnUS,
	}
	for raw, want := range cases {
		if got := NormalizeLocale(raw); got != want {
			t.Fatalf("NormalizeLocale(%q) want %s got %s", raw, want, got)
		}
	}
}

func newLocaleContext(target, acceptLanguage string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	if acceptLanguage != "" {
		c.Request.Header.Set("Accept-Language", acceptLanguage)
	}
	return c
}

func TestResolveLocale(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		target, acceptLanguage, want string
	}{
		{"/?lang=zh-CN", "id-ID", LocaleZhCN},
		{"/", "id-ID,id;q=0.9,en;q=0.8", LocaleIDID},
		{"/", "", DefaultLocale},
	}
	for _, tc := range cases {
		// gin 会缓存 query，每个用例使用新的 Context
		c := newLocaleContext(tc.target, tc.acceptLanguage)
		if got := ResolveLocale(c); got != tc.want {
			t.Fatalf("ResolveLocale(%s, %q) want %s got %s", tc.target, tc.acceptLanguage, tc.want, got)
		}
	}

	if got := ResolveLocale(nil); got != DefaultLocale {
		t.Fatalf("nil context should use default, got %s", got)
	}
}

func TestSprintf(t *testing.T) {
	if got := Sprintf(LocaleEnUS, "error.rate_limited", 30); got != "Too many requests, please retry in 30 seconds" {
		t.Fatalf("unexpected message: %s", got)
	}
}
