package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveMediaURL(t *testing.T) {
	tests := []struct {
		name  string
		input interface{}
		want  string
	}{
		{"nil", nil, ""},
		{"bare string", "/uploads/part.png", "/uploads/part.png"},
		{"object with url", map[string]interface{}{"url": "/uploads/a.jpg"}, "/uploads/a.jpg"},
		{
			"formats prefer medium",
			map[string]interface{}{
				"formats": map[string]interface{}{
					"thumbnail": map[string]interface{}{"url": "/t.jpg"},
					"small":     map[string]interface{}{"url": "/s.jpg"},
					"medium":    map[string]interface{}{"url": "/m.jpg"},
				},
			},
			"/m.jpg",
		},
		{
			"formats fall back to thumbnail",
			map[string]interface{}{
				"formats": map[string]interface{}{
					"thumbnail": map[string]interface{}{"url": "/t.jpg"},
				},
			},
			"/t.jpg",
		},
		{
			"data attributes envelope",
			map[string]interface{}{
				"data": map[string]interface{}{
					"attributes": map[string]interface{}{"url": "/nested.jpg"},
				},
			},
			"/nested.jpg",
		},
		{
			"array first resolvable wins",
			[]interface{}{
				map[string]interface{}{"caption": "no url here"},
				"/second.jpg",
				"/third.jpg",
			},
			"/second.jpg",
		},
		{"number", 42, ""},
		{"empty object", map[string]interface{}{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveMediaURL(tt.input))
		})
	}
}

func TestAbsoluteURL(t *testing.T) {
	base := "http://localhost:1337"

	assert.Equal(t, "", AbsoluteURL("", base))
	assert.Equal(t, "https://cdn.example.com/a.jpg", AbsoluteURL("https://cdn.example.com/a.jpg", base))
	assert.Equal(t, "http://localhost:1337/uploads/a.jpg", AbsoluteURL("/uploads/a.jpg", base))
	assert.Equal(t, "http://localhost:1337/uploads/a.jpg", AbsoluteURL("uploads/a.jpg", base))
	assert.Equal(t, "/uploads/a.jpg", AbsoluteURL("uploads/a.jpg", ""))
}
