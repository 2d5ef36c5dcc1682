// Package view holds the portfolio pages and the renderers that draw them
package view

import (
	"github.com/lixenwraith/trailfx/effect"
	"github.com/lixenwraith/trailfx/render"
)

// Home is the slug of the landing page
const Home = "home"

// Stat is one headline figure
type Stat struct {
	Label string
	Value string
}

// Card is a project entry on the landing page linking to Target
type Card struct {
	Title       string
	Subtitle    string
	Description string
	Target      string
}

// Page is one view of the showcase
type Page struct {
	Slug     string
	Tab      string
	Title    string
	Subtitle string
	Stats    []Stat
	Sections []string
	Cards    []Card
	Accent   render.RGB
	Palette  []render.RGB
}

// EffectConfig returns base with this page's palette and node color
func (p Page) EffectConfig(base effect.Config) effect.Config {
	base.Palette = append([]render.RGB(nil), p.Palette...)
	base.NodeColor = p.Accent
	return base
}

func palette(hex ...string) []render.RGB {
	out := make([]render.RGB, len(hex))
	for i, h := range hex {
		out[i] = render.MustHex(h)
	}
	return out
}

var catalog = []Page{
	{
		Slug:     Home,
		Tab:      "Home",
		Title:    "Building Intelligent Systems",
		Subtitle: "5 production-ready machine learning projects. From NLP to Computer Vision.",
		Sections: []string{"Projects_", "Each project solves a real problem using different ML approaches"},
		Cards: []Card{
			{"Fake News Detector", "Logistic Regression • TF-IDF", "Binary classification system analyzing 44K news articles", "fake-news"},
			{"Mental Health Chatbot", "Random Forest • 6-Class", "Real-time emotion detection for mental health support", "mental-health"},
			{"Resume Screener", "Cosine Similarity • NLP", "ATS matching with PDF parsing and skill extraction", "resume-screener"},
			{"Traffic Predictor", "LSTM • Time-Series", "Forecasting congestion across 4 junctions", "traffic-predictor"},
			{"Sign Language AI", "CNN • Computer Vision", "Real-time ASL recognition for accessibility", "sign-language"},
		},
		Accent:  render.MustHex("#8b5cf6"),
		Palette: palette("#a855f7", "#ec4899", "#3b82f6", "#8b5cf6", "#f59e0b"),
	},
	{
		Slug:     "fake-news",
		Tab:      "Fake News",
		Title:    "Fake News Detector",
		Subtitle: "AI-powered detection using Natural Language Processing",
		Stats:    []Stat{{"Accuracy", "94%"}, {"Dataset", "44K"}, {"Type", "NLP"}},
		Sections: []string{"Quick Test Samples", "Enter News Article", "Analysis Results"},
		Accent:   render.MustHex("#3b82f6"),
		Palette:  palette("#3b82f6", "#ec4899", "#8b5cf6", "#10b981", "#f59e0b"),
	},
	{
		Slug:     "mental-health",
		Tab:      "Mental Health",
		Title:    "Mental Health Support",
		Subtitle: "AI-Powered Emotion Detection | Random Forest Model",
		Stats:    []Stat{{"Model", "Random Forest"}, {"Emotions", "6 Classes"}},
		Sections: []string{"Emotion Tracker"},
		Accent:   render.MustHex("#a855f7"),
		Palette:  palette("#a855f7", "#ec4899", "#8b5cf6", "#c084fc", "#e879f9"),
	},
	{
		Slug:     "resume-screener",
		Tab:      "Resume",
		Title:    "AI Resume Screener",
		Subtitle: "Optimize your resume for ATS systems",
		Sections: []string{"Upload Resume", "Job Description", "ATS Score", "Keywords Analysis", "Skills Analysis", "Improvement Suggestions"},
		Accent:   render.MustHex("#10b981"),
		Palette:  palette("#10b981", "#3b82f6", "#8b5cf6", "#f59e0b", "#ec4899"),
	},
	{
		Slug:     "sign-language",
		Tab:      "Sign Language",
		Title:    "Sign Language Translator",
		Subtitle: "Real-time ASL recognition powered by CNN",
		Sections: []string{"Live Camera Feed", "Top Predictions"},
		Accent:   render.MustHex("#f59e0b"),
		Palette:  palette("#f59e0b", "#ec4899", "#8b5cf6", "#3b82f6", "#10b981"),
	},
	{
		Slug:     "traffic-predictor",
		Tab:      "Traffic",
		Title:    "Traffic Predictor",
		Subtitle: "AI-powered traffic forecasting using LSTM",
		Sections: []string{"Select Junction", "Predict Next Hours", "Traffic Forecast"},
		Accent:   render.MustHex("#ef4444"),
		Palette:  palette("#ef4444", "#f59e0b", "#eab308", "#10b981", "#3b82f6"),
	},
}

// Pages returns the page catalog in tab order
func Pages() []Page {
	return append([]Page(nil), catalog...)
}

// Index returns the catalog position of slug, or -1
func Index(slug string) int {
	for i, p := range catalog {
		if p.Slug == slug {
			return i
		}
	}
	return -1
}
