package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const defaultServerURL = "http://localhost:3540"

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205")).
			MarginBottom(1)

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("170")).
			Bold(true)

	itemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86"))

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)
)

type step int

const (
	stepEnteringEmail step = iota
	stepEnteringPassword
	stepAuthenticating
	stepOfferSignup
	stepEnteringName
	stepRegistering
	stepLoadingCatalog
	stepBrowsing
)

type recipeItem struct {
	Title       string   `json:"title"`
	TimeMinutes int      `json:"time_minutes"`
	Price       float64  `json:"price"`
	Ingredients []string `json:"-"`
}

type ingredientItem struct {
	Name string `json:"name"`
}

type model struct {
	serverURL    string
	step         step
	email        string
	password     string
	name         string
	token        string
	currentInput string
	recipes      []recipeItem
	ingredients  []ingredientItem
	message      string
	quitting     bool
}

type tokenMsg struct{ token string }
type badCredentialsMsg struct{}
type registeredMsg struct{}
type catalogMsg struct {
	recipes     []recipeItem
	ingredients []ingredientItem
}
type errMsg struct{ err error }

func (e errMsg) Error() string { return e.err.Error() }

func initialModel(serverURL string) model {
	return model{
		serverURL: serverURL,
		step:      stepEnteringEmail,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func postJSON(url string, payload any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	client := &http.Client{Timeout: 10 * time.Second}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return client.Do(req)
}

func fetchToken(serverURL, email, password string) tea.Cmd {
	return func() tea.Msg {
		resp, err := postJSON(serverURL+"/user/token", map[string]string{
			"email":    email,
			"password": password,
		})
		if err != nil {
			return errMsg{fmt.Errorf("server unreachable: %w", err)}
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusBadRequest {
			return badCredentialsMsg{}
		}
		if resp.StatusCode != http.StatusOK {
			body, _ := io.ReadAll(resp.Body)
			return errMsg{fmt.Errorf("server returned %d: %s", resp.StatusCode, string(body))}
		}

		var result struct {
			Token string `json:"token"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil || result.Token == "" {
			return errMsg{fmt.Errorf("no token in response")}
		}
		return tokenMsg{token: result.Token}
	}
}

func registerUser(serverURL, email, password, name string) tea.Cmd {
	return func() tea.Msg {
		resp, err := postJSON(serverURL+"/user/create", map[string]string{
			"email":    email,
			"password": password,
			"name":     name,
		})
		if err != nil {
			return errMsg{fmt.Errorf("server unreachable: %w", err)}
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			body, _ := io.ReadAll(resp.Body)
			return errMsg{fmt.Errorf("signup failed (%d): %s", resp.StatusCode, string(body))}
		}
		return registeredMsg{}
	}
}

func fetchCatalog(serverURL, token string) tea.Cmd {
	return func() tea.Msg {
		client := &http.Client{Timeout: 10 * time.Second}

		get := func(path string, out any) error {
			req, err := http.NewRequest(http.MethodGet, serverURL+path, nil)
			if err != nil {
				return err
			}
			req.Header.Set("Authorization", "Token "+token)
			resp, err := client.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("server returned %d for %s", resp.StatusCode, path)
			}
			return json.NewDecoder(resp.Body).Decode(out)
		}

		var recipes struct {
			Data []recipeItem `json:"data"`
		}
		if err := get("/recipe/recipes", &recipes); err != nil {
			return errMsg{err}
		}
		var ingredients struct {
			Data []ingredientItem `json:"data"`
		}
		if err := get("/recipe/ingredients", &ingredients); err != nil {
			return errMsg{err}
		}
		return catalogMsg{recipes: recipes.Data, ingredients: ingredients.Data}
	}
}

func (m model) typing() bool {
	switch m.step {
	case stepEnteringEmail, stepEnteringPassword, stepEnteringName:
		return true
	}
	return false
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "q":
			if !m.typing() {
				m.quitting = true
				return m, tea.Quit
			}
			m.currentInput += "q"

		case "backspace":
			if len(m.currentInput) > 0 {
				m.currentInput = m.currentInput[:len(m.currentInput)-1]
			}

		case "y":
			if m.step == stepOfferSignup {
				m.step = stepEnteringName
				m.message = ""
				return m, nil
			}
			if m.typing() {
				m.currentInput += "y"
			}

		case "n":
			if m.step == stepOfferSignup {
				m.step = stepEnteringEmail
				m.email = ""
				m.password = ""
				m.message = ""
				return m, nil
			}
			if m.typing() {
				m.currentInput += "n"
			}

		case "enter":
			switch m.step {
			case stepEnteringEmail:
				if m.currentInput != "" {
					m.email = m.currentInput
					m.currentInput = ""
					m.step = stepEnteringPassword
				}

			case stepEnteringPassword:
				if m.currentInput != "" {
					m.password = m.currentInput
					m.currentInput = ""
					m.step = stepAuthenticating
					m.message = "Signing in..."
					return m, fetchToken(m.serverURL, m.email, m.password)
				}

			case stepEnteringName:
				m.name = m.currentInput
				m.currentInput = ""
				m.step = stepRegistering
				m.message = "Creating account..."
				return m, registerUser(m.serverURL, m.email, m.password, m.name)

			case stepBrowsing:
				m.quitting = true
				return m, tea.Quit
			}

		default:
			if m.typing() {
				m.currentInput += msg.String()
			}
		}

	case tokenMsg:
		m.token = msg.token
		m.step = stepLoadingCatalog
		m.message = successStyle.Render("✓ Signed in as " + m.email)
		return m, fetchCatalog(m.serverURL, m.token)

	case badCredentialsMsg:
		m.step = stepOfferSignup
		m.message = ""

	case registeredMsg:
		m.step = stepAuthenticating
		m.message = "Account created, signing in..."
		return m, fetchToken(m.serverURL, m.email, m.password)

	case catalogMsg:
		m.recipes = msg.recipes
		m.ingredients = msg.ingredients
		m.step = stepBrowsing

	case errMsg:
		m.message = errorStyle.Render("✗ " + msg.err.Error())
		m.step = stepEnteringEmail
		m.email = ""
		m.password = ""
	}

	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("🍳 Pantry — recipe catalog\n\n"))

	switch m.step {
	case stepEnteringEmail:
		if m.message != "" {
			s.WriteString(m.message + "\n\n")
		}
		s.WriteString(promptStyle.Render("Email:\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepEnteringPassword:
		s.WriteString(promptStyle.Render("Password:\n"))
		s.WriteString(inputStyle.Render("> " + strings.Repeat("•", len(m.currentInput))))
		s.WriteString("\n\nPress Enter\n")

	case stepAuthenticating, stepRegistering, stepLoadingCatalog:
		s.WriteString(m.message + "\n")

	case stepOfferSignup:
		s.WriteString(errorStyle.Render("Could not sign in with those credentials.\n"))
		s.WriteString(fmt.Sprintf("\nCreate a new account for %s? (y/n)\n", m.email))

	case stepEnteringName:
		s.WriteString(promptStyle.Render("Display name (optional):\n"))
		s.WriteString(inputStyle.Render("> " + m.currentInput))
		s.WriteString("\n\nPress Enter\n")

	case stepBrowsing:
		s.WriteString(m.message + "\n\n")
		s.WriteString(headerStyle.Render(fmt.Sprintf("Recipes (%d)\n", len(m.recipes))))
		if len(m.recipes) == 0 {
			s.WriteString(itemStyle.Render("none yet\n"))
		}
		for _, r := range m.recipes {
			s.WriteString(itemStyle.Render(fmt.Sprintf("%s — %d min, $%.2f\n", r.Title, r.TimeMinutes, r.Price)))
		}
		s.WriteString("\n")
		s.WriteString(headerStyle.Render(fmt.Sprintf("Ingredients (%d)\n", len(m.ingredients))))
		if len(m.ingredients) == 0 {
			s.WriteString(itemStyle.Render("none yet\n"))
		}
		for _, i := range m.ingredients {
			s.WriteString(itemStyle.Render(i.Name + "\n"))
		}
		s.WriteString("\nPress Enter or q to exit\n")
	}

	return s.String()
}

func main() {
	serverURL := os.Getenv("RECIPE_SERVER_URL")
	if serverURL == "" {
		serverURL = defaultServerURL
	}

	p := tea.NewProgram(initialModel(serverURL))
	if _, err := p.Run(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
