package content

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sarvaliya/folio/internal/response"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
personal:
  name: Test Person
  roles: [UI Designer]
social:
  github: "#"
about:
  hobbies:
    - { name: Tech Events, icon: Calendar }
    - { name: Sailing, icon: Sailboat }
  stats:
    projects: "15+"
skills:
  categories:
    - title: Design
      icon: Palette
      skills:
        - { name: Figma, level: 85 }
        - { name: Overconfidence, level: 140 }
    - title: Mystery
      icon: Rocket
      skills: []
  softSkills:
    - { name: Adaptability, icon: Compass, description: Thriving in change }
testimonials:
  - { id: 1, name: A, rating: 9 }
  - { id: 2, name: B, rating: 0 }
contact:
  info:
    - { icon: Mail, label: Email, value: a@b.c, href: "mailto:a@b.c" }
    - { icon: Phone, label: Call, value: "123", href: "tel:123" }
`

func TestParseNormalizesIconsAndRanges(t *testing.T) {
	doc, err := Parse([]byte(sample))
	require.NoError(t, err)

	assert.Equal(t, "Test Person", doc.Personal.Name)
	assert.Equal(t, "Palette", doc.Skills.Categories[0].Icon)
	assert.Equal(t, "Code", doc.Skills.Categories[1].Icon)
	assert.Equal(t, 85, doc.Skills.Categories[0].Skills[0].Level)
	assert.Equal(t, 100, doc.Skills.Categories[0].Skills[1].Level)
	assert.Equal(t, "Lightbulb", doc.Skills.SoftSkills[0].Icon)
	assert.Equal(t, "Calendar", doc.About.Hobbies[0].Icon)
	assert.Equal(t, "Coffee", doc.About.Hobbies[1].Icon)
	assert.Equal(t, "Mail", doc.Contact.Info[0].Icon)
	assert.Equal(t, "Mail", doc.Contact.Info[1].Icon)
	assert.Equal(t, 5, doc.Testimonials[0].Rating)
	assert.Equal(t, 1, doc.Testimonials[1].Rating)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte("personal:\n  nickname: x\n"))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, ErrNotConfigured)

	path := filepath.Join(t.TempDir(), "portfolio.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))
	doc, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, doc.Testimonials, 2)
}

func TestIconSetResolve(t *testing.T) {
	assert.Equal(t, "Gamepad2", HobbyIcons.Resolve("Gamepad2"))
	assert.Equal(t, "Coffee", HobbyIcons.Resolve(""))
	assert.Equal(t, "Code", SkillCategoryIcons.Resolve("gamepad2"))
}

func TestPortfolioRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	doc, err := Parse([]byte(sample))
	require.NoError(t, err)

	r := gin.New()
	RegisterRoutes(r.Group("/with"), doc, response.NewWriter("text"))
	RegisterRoutes(r.Group("/without"), nil, response.NewWriter("text"))

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/with/portfolio", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Contains(t, body, "skills")

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/without/portfolio", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "Portfolio content not configured", rr.Body.String())
}
