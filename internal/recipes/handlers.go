package recipes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/HerbHall/larder/internal/catalog"
	"github.com/HerbHall/larder/internal/plugin"
	"github.com/HerbHall/larder/internal/server"
	"github.com/HerbHall/larder/pkg/models"
)

// Routes implements plugin.Plugin.
func (m *Module) Routes() []plugin.Route {
	return []plugin.Route{
		{Method: "GET", Path: "", Handler: m.handleList},
		{Method: "GET", Path: "/filters", Handler: m.handleFilters},
		{Method: "GET", Path: "/session", Handler: m.handleSession},
		{Method: "PUT", Path: "/session/criteria", Handler: m.handleSetCriteria},
		{Method: "GET", Path: "/ingredients/{id}", Handler: m.handleIngredient},
		{Method: "GET", Path: "/{id}", Handler: m.handleDetail},
		// Three segments so the pattern cannot overlap /ingredients/{id}.
		{Method: "GET", Path: "/{id}/portions/{portions}", Handler: m.handleScaled},
	}
}

type loreOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Price string `json:"price,omitempty"`
}

type recipeSummary struct {
	ID           string               `json:"id"`
	Title        string               `json:"title"`
	Image        models.Image         `json:"image"`
	BasePortions int                  `json:"base_portions"`
	Properties   []catalog.GroupBlock `json:"properties"`
	Lore         []loreOption         `json:"lore,omitempty"`
}

type recipeDetail struct {
	recipeSummary
	Story       models.Story  `json:"story"`
	Allergens   []string      `json:"allergens,omitempty"`
	Portions    int           `json:"portions"`
	Ingredients []ScaledList  `json:"ingredients"`
	Steps       []models.Step `json:"steps"`
}

type listResponse struct {
	Total int             `json:"total"`
	Items []recipeSummary `json:"items"`
}

func (m *Module) summary(r models.Recipe) recipeSummary {
	s := recipeSummary{
		ID:           r.ID,
		Title:        r.Title,
		Image:        r.Image,
		BasePortions: r.BasePortions,
		Properties:   m.cat.GroupProperties(r.PropertyIDs),
	}
	for _, id := range r.LoreIDs {
		opt := loreOption{ID: id, Label: m.cat.LoreLabel(id)}
		if tag, ok := m.cat.LoreTag(id); ok && tag.Price != nil {
			opt.Price = tag.Price.String()
		}
		s.Lore = append(s.Lore, opt)
	}
	return s
}

// handleList evaluates the criteria supplied as query parameters in one
// shot, with no session state involved.
func (m *Module) handleList(w http.ResponseWriter, r *http.Request) {
	matched := m.engine.Evaluate(m.criteriaFromQuery(r))
	resp := listResponse{Total: len(matched), Items: make([]recipeSummary, 0, len(matched))}
	for _, rec := range matched {
		resp.Items = append(resp.Items, m.summary(rec))
	}
	writeJSON(w, http.StatusOK, resp)
}

// criteriaFromQuery maps list-endpoint query parameters onto filter
// criteria. A season parameter names a season entry; its months are
// resolved through the catalog, and an unknown season leaves the month
// filter inactive.
func (m *Module) criteriaFromQuery(r *http.Request) FilterCriteria {
	q := r.URL.Query()
	c := FilterCriteria{
		ExcludedProperties: splitParam(q.Get("exclude")),
		RequiredProperties: splitParam(q.Get("require")),
		RequiredLore:       splitParam(q.Get("lore")),
		MustContain:        splitParam(q.Get("contains")),
		MustNotContain:     splitParam(q.Get("excludes")),
		Query:              q.Get("q"),
		RankNutrients:      splitParam(q.Get("rank")),
	}
	if season := strings.TrimSpace(q.Get("season")); season != "" {
		c.SeasonMonths = m.cat.SeasonMonths(season)
	}
	return c
}

func splitParam(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// handleSession returns the list last published by the debounced evaluator.
func (m *Module) handleSession(w http.ResponseWriter, r *http.Request) {
	if m.eval == nil {
		server.InternalError(w, "module not started", r.URL.Path)
		return
	}
	matched := m.eval.Current()
	resp := listResponse{Total: len(matched), Items: make([]recipeSummary, 0, len(matched))}
	for _, rec := range matched {
		resp.Items = append(resp.Items, m.summary(rec))
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleSetCriteria replaces the session criteria. The evaluation pass runs
// only after the debounce delay elapses without a further update, so rapid
// successive calls cost one pass.
func (m *Module) handleSetCriteria(w http.ResponseWriter, r *http.Request) {
	if m.eval == nil {
		server.InternalError(w, "module not started", r.URL.Path)
		return
	}
	var criteria FilterCriteria
	if err := json.NewDecoder(r.Body).Decode(&criteria); err != nil {
		server.BadRequest(w, "invalid JSON body", r.URL.Path)
		return
	}
	m.eval.Update(criteria)
	writeJSON(w, http.StatusAccepted, map[string]any{
		"debounce_ms": m.debounce.Milliseconds(),
	})
}

func (m *Module) handleDetail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	rec, ok := m.cat.Recipe(id)
	if !ok {
		server.NotFound(w, "recipe not found: "+id, r.URL.Path)
		return
	}

	portions, err := portionsParam(r, rec.BasePortions)
	if err != nil {
		server.BadRequest(w, err.Error(), r.URL.Path)
		return
	}

	writeJSON(w, http.StatusOK, recipeDetail{
		recipeSummary: m.summary(rec),
		Story:         rec.Story,
		Allergens:     rec.Allergens,
		Portions:      portions,
		Ingredients:   ScaledLists(rec, portions, m.cat),
		Steps:         rec.Steps,
	})
}

type scaledResponse struct {
	RecipeID     string       `json:"recipe_id"`
	BasePortions int          `json:"base_portions"`
	Portions     int          `json:"portions"`
	Lists        []ScaledList `json:"lists"`
}

func (m *Module) handleScaled(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	rec, ok := m.cat.Recipe(id)
	if !ok {
		server.NotFound(w, "recipe not found: "+id, r.URL.Path)
		return
	}

	raw := r.PathValue("portions")
	n, err := strconv.Atoi(raw)
	if err != nil {
		server.BadRequest(w, fmt.Sprintf("invalid portions value %q", raw), r.URL.Path)
		return
	}
	portions := ClampPortions(n)

	writeJSON(w, http.StatusOK, scaledResponse{
		RecipeID:     rec.ID,
		BasePortions: rec.BasePortions,
		Portions:     portions,
		Lists:        ScaledLists(rec, portions, m.cat),
	})
}

// portionsParam reads ?portions=N, clamped to at least 1, defaulting to the
// recipe's base portion count.
func portionsParam(r *http.Request, base int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("portions"))
	if raw == "" {
		return ClampPortions(base), nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid portions value %q", raw)
	}
	return ClampPortions(n), nil
}

type ingredientInfo struct {
	models.Ingredient
	Properties []catalog.GroupBlock `json:"property_groups"`
}

func (m *Module) handleIngredient(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	ing, ok := m.cat.Ingredient(id)
	if !ok {
		server.NotFound(w, "ingredient not found: "+id, r.URL.Path)
		return
	}
	writeJSON(w, http.StatusOK, ingredientInfo{
		Ingredient: ing,
		Properties: m.cat.GroupProperties(ing.PropertyIDs),
	})
}

type ingredientOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type nutrientOption struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Unit  string `json:"unit,omitempty"`
}

type filtersResponse struct {
	Properties  []models.PropertyTag `json:"properties"`
	Lore        []loreOption         `json:"lore"`
	Seasons     []models.SeasonEntry `json:"seasons"`
	Months      []models.SeasonEntry `json:"months"`
	Nutrients   []nutrientOption     `json:"nutrients"`
	Ingredients []ingredientOption   `json:"ingredients"`
}

// handleFilters lists every selectable filter option: property tags, lore
// tags with price labels, season entries split from single-month entries,
// rankable nutrients, and the ingredient index sorted by name.
func (m *Module) handleFilters(w http.ResponseWriter, r *http.Request) {
	coll := catalog.NewCollator()

	resp := filtersResponse{
		Properties:  make([]models.PropertyTag, 0, len(m.cat.Properties)),
		Lore:        make([]loreOption, 0, len(m.cat.Lore)),
		Seasons:     []models.SeasonEntry{},
		Months:      []models.SeasonEntry{},
		Nutrients:   make([]nutrientOption, 0, len(m.cat.Nutrients)),
		Ingredients: make([]ingredientOption, 0, len(m.cat.Ingredients)),
	}

	resp.Properties = append(resp.Properties, m.cat.Properties...)
	sort.SliceStable(resp.Properties, func(i, j int) bool {
		a, b := resp.Properties[i], resp.Properties[j]
		if a.Priority != b.Priority {
			return a.Priority < b.Priority
		}
		return coll.CompareString(a.Label, b.Label) < 0
	})

	for _, tag := range m.cat.Lore {
		opt := loreOption{ID: tag.ID, Label: tag.Label}
		if tag.Price != nil {
			opt.Price = tag.Price.String()
		}
		resp.Lore = append(resp.Lore, opt)
	}
	sort.SliceStable(resp.Lore, func(i, j int) bool {
		return coll.CompareString(resp.Lore[i].Label, resp.Lore[j].Label) < 0
	})

	for _, entry := range m.cat.Seasons {
		if strings.HasPrefix(entry.ID, "month_") {
			resp.Months = append(resp.Months, entry)
		} else {
			resp.Seasons = append(resp.Seasons, entry)
		}
	}

	for _, def := range m.cat.Nutrients {
		resp.Nutrients = append(resp.Nutrients, nutrientOption{ID: def.ID, Label: def.Label, Unit: def.Unit})
	}

	for _, ing := range m.cat.Ingredients {
		resp.Ingredients = append(resp.Ingredients, ingredientOption{ID: ing.ID, Name: ing.Name})
	}
	sort.SliceStable(resp.Ingredients, func(i, j int) bool {
		return coll.CompareString(resp.Ingredients[i].Name, resp.Ingredients[j].Name) < 0
	})

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
