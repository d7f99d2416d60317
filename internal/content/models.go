package content

// Document is the static portfolio served to the site.
type Document struct {
	Personal     Personal          `yaml:"personal" json:"personal"`
	Social       map[string]string `yaml:"social" json:"social"`
	About        About             `yaml:"about" json:"about"`
	Skills       Skills            `yaml:"skills" json:"skills"`
	Projects     []Project         `yaml:"projects" json:"projects"`
	Testimonials []Testimonial     `yaml:"testimonials" json:"testimonials"`
	Contact      Contact           `yaml:"contact" json:"contact"`
	Navigation   []NavLink         `yaml:"navigation" json:"navigation"`
	Footer       Footer            `yaml:"footer" json:"footer"`
}

type Personal struct {
	Name        string   `yaml:"name" json:"name"`
	Roles       []string `yaml:"roles" json:"roles"`
	Tagline     string   `yaml:"tagline" json:"tagline"`
	Description string   `yaml:"description" json:"description"`
	Location    string   `yaml:"location" json:"location"`
	Email       string   `yaml:"email" json:"email"`
	Avatar      string   `yaml:"avatar" json:"avatar"`
}

type About struct {
	Description     string            `yaml:"description" json:"description"`
	CurrentLocation string            `yaml:"currentLocation" json:"currentLocation"`
	OriginLocation  string            `yaml:"originLocation" json:"originLocation"`
	Timeline        []TimelineEntry   `yaml:"timeline" json:"timeline"`
	Stats           map[string]string `yaml:"stats" json:"stats"`
	Hobbies         []IconItem        `yaml:"hobbies" json:"hobbies"`
	Quote           Quote             `yaml:"quote" json:"quote"`
}

type TimelineEntry struct {
	Year        string `yaml:"year" json:"year"`
	Title       string `yaml:"title" json:"title"`
	Company     string `yaml:"company" json:"company"`
	Description string `yaml:"description" json:"description"`
	Icon        string `yaml:"icon" json:"icon"`
}

type Quote struct {
	Text   string `yaml:"text" json:"text"`
	Author string `yaml:"author" json:"author"`
}

// IconItem is a named entry rendered with an icon from a fixed set.
type IconItem struct {
	Name        string `yaml:"name" json:"name"`
	Icon        string `yaml:"icon" json:"icon"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

type Skills struct {
	Categories []SkillCategory `yaml:"categories" json:"categories"`
	SoftSkills []IconItem      `yaml:"softSkills" json:"softSkills"`
}

type SkillCategory struct {
	Title  string  `yaml:"title" json:"title"`
	Icon   string  `yaml:"icon" json:"icon"`
	Skills []Skill `yaml:"skills" json:"skills"`
}

// Skill level is a percentage in [0, 100].
type Skill struct {
	Name  string `yaml:"name" json:"name"`
	Level int    `yaml:"level" json:"level"`
}

type Project struct {
	ID          int            `yaml:"id" json:"id"`
	Title       string         `yaml:"title" json:"title"`
	Category    string         `yaml:"category" json:"category"`
	Description string         `yaml:"description" json:"description"`
	Image       string         `yaml:"image" json:"image"`
	Tags        []string       `yaml:"tags" json:"tags"`
	LiveURL     string         `yaml:"liveUrl" json:"liveUrl"`
	GithubURL   string         `yaml:"githubUrl" json:"githubUrl"`
	Details     ProjectDetails `yaml:"details" json:"details"`
}

type ProjectDetails struct {
	Challenge string   `yaml:"challenge" json:"challenge"`
	Solution  string   `yaml:"solution" json:"solution"`
	Result    string   `yaml:"result" json:"result"`
	Timeline  string   `yaml:"timeline" json:"timeline"`
	Role      string   `yaml:"role" json:"role"`
	Images    []string `yaml:"images" json:"images"`
}

// Testimonial rating is clamped to [1, 5].
type Testimonial struct {
	ID      int    `yaml:"id" json:"id"`
	Name    string `yaml:"name" json:"name"`
	Role    string `yaml:"role" json:"role"`
	Company string `yaml:"company" json:"company"`
	Avatar  string `yaml:"avatar" json:"avatar"`
	Rating  int    `yaml:"rating" json:"rating"`
	Content string `yaml:"content" json:"content"`
	Project string `yaml:"project" json:"project"`
}

type Contact struct {
	Title       string        `yaml:"title" json:"title"`
	Description string        `yaml:"description" json:"description"`
	Info        []ContactInfo `yaml:"info" json:"info"`
	FunFact     FunFact       `yaml:"funFact" json:"funFact"`
}

type FunFact struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
}

type ContactInfo struct {
	Icon  string `yaml:"icon" json:"icon"`
	Label string `yaml:"label" json:"label"`
	Value string `yaml:"value" json:"value"`
	Href  string `yaml:"href" json:"href"`
}

type NavLink struct {
	Name string `yaml:"name" json:"name"`
	Href string `yaml:"href" json:"href"`
}

type Footer struct {
	Tagline    string   `yaml:"tagline" json:"tagline"`
	QuickLinks []string `yaml:"quickLinks" json:"quickLinks"`
	Copyright  string   `yaml:"copyright" json:"copyright"`
}
