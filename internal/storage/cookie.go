package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/net/publicsuffix"
)

// CookieFile keeps each entry as a cookie scoped to the API origin and
// mirrors the jar to a JSON file so the values survive restarts.
type CookieFile struct {
	mu     sync.Mutex
	path   string
	origin *url.URL
	jar    *cookiejar.Jar
}

// savedJar is the JSON structure written to disk.
type savedJar struct {
	Origin  string        `json:"origin"`
	Cookies []savedCookie `json:"cookies"`
	SavedAt time.Time     `json:"saved_at"`
}

type savedCookie struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// OpenCookieFile restores the jar for origin from path. A missing file is
// an empty jar. Cookies saved for a different origin are ignored.
func OpenCookieFile(path, origin string) (*CookieFile, error) {
	u, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("parsing cookie origin: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("cookie origin %q has no host", origin)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	c := &CookieFile{
		path:   path,
		origin: &url.URL{Scheme: u.Scheme, Host: u.Host, Path: "/"},
		jar:    jar,
	}
	if err := c.load(); err != nil {
		return nil, err
	}
	return c, nil
}

// Path returns the file the jar is mirrored to.
func (c *CookieFile) Path() string {
	return c.path
}

func (c *CookieFile) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, ck := range c.jar.Cookies(c.origin) {
		if ck.Name == key {
			return ck.Value, nil
		}
	}
	return "", nil
}

func (c *CookieFile) Set(_ context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.jar.SetCookies(c.origin, []*http.Cookie{c.cookie(key, value)})
	return c.save()
}

func (c *CookieFile) Clear(ctx context.Context, key string) error {
	return c.Set(ctx, key, "")
}

func (c *CookieFile) cookie(name, value string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Secure:   c.origin.Scheme == "https",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

func (c *CookieFile) load() error {
	data, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading cookie file: %w", err)
	}

	var saved savedJar
	if err := json.Unmarshal(data, &saved); err != nil {
		return fmt.Errorf("decoding cookie file %s: %w", c.path, err)
	}
	if saved.Origin != c.origin.String() {
		return nil
	}

	cookies := make([]*http.Cookie, len(saved.Cookies))
	for i, sc := range saved.Cookies {
		cookies[i] = c.cookie(sc.Name, sc.Value)
	}
	c.jar.SetCookies(c.origin, cookies)
	return nil
}

func (c *CookieFile) save() error {
	cookies := c.jar.Cookies(c.origin)
	sc := make([]savedCookie, len(cookies))
	for i, ck := range cookies {
		sc[i] = savedCookie{Name: ck.Name, Value: ck.Value}
	}

	data, err := json.MarshalIndent(savedJar{
		Origin:  c.origin.String(),
		Cookies: sc,
		SavedAt: time.Now(),
	}, "", "  ")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(c.path), 0o700); err != nil {
		return fmt.Errorf("creating cookie dir: %w", err)
	}
	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing cookie file: %w", err)
	}
	return os.Rename(tmp, c.path)
}
