package handlers

import "recipebox/internal/models"

// Typed response shapes per endpoint. Each struct lists exactly the fields
// the endpoint exposes; nothing else from the model leaks out.

// UserResponse is the profile shape returned by /user endpoints.
type UserResponse struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func newUserResponse(u *models.User) UserResponse {
	return UserResponse{Email: u.Email, Name: u.Name}
}

// TagResponse is the wire shape of a tag.
type TagResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func newTagResponses(tags []models.Tag) []TagResponse {
	out := make([]TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, TagResponse{ID: t.ID, Name: t.Name})
	}
	return out
}

// IngredientResponse is the wire shape of an ingredient.
type IngredientResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func newIngredientResponses(ingredients []models.Ingredient) []IngredientResponse {
	out := make([]IngredientResponse, 0, len(ingredients))
	for _, i := range ingredients {
		out = append(out, IngredientResponse{ID: i.ID, Name: i.Name})
	}
	return out
}

// RecipeListItem is the collection view of a recipe: associations as bare
// ids only.
type RecipeListItem struct {
	ID          uint    `json:"id"`
	Title       string  `json:"title"`
	TimeMinutes int     `json:"time_minutes"`
	Price       float64 `json:"price"`
	Link        string  `json:"link"`
	Image       string  `json:"image"`
	Tags        []uint  `json:"tags"`
	Ingredients []uint  `json:"ingredients"`
}

// RecipeDetail is the single-record view: associations as full objects.
type RecipeDetail struct {
	ID          uint                 `json:"id"`
	Title       string               `json:"title"`
	TimeMinutes int                  `json:"time_minutes"`
	Price       float64              `json:"price"`
	Link        string               `json:"link"`
	Image       string               `json:"image"`
	Tags        []TagResponse        `json:"tags"`
	Ingredients []IngredientResponse `json:"ingredients"`
}

func imageURL(stored string) string {
	if stored == "" {
		return ""
	}
	return "/media/" + stored
}

func newRecipeListItem(r models.Recipe) RecipeListItem {
	tagIDs := make([]uint, 0, len(r.Tags))
	for _, t := range r.Tags {
		tagIDs = append(tagIDs, t.ID)
	}
	ingredientIDs := make([]uint, 0, len(r.Ingredients))
	for _, i := range r.Ingredients {
		ingredientIDs = append(ingredientIDs, i.ID)
	}
	return RecipeListItem{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		Image:       imageURL(r.Image),
		Tags:        tagIDs,
		Ingredients: ingredientIDs,
	}
}

func newRecipeListItems(recipes []models.Recipe) []RecipeListItem {
	out := make([]RecipeListItem, 0, len(recipes))
	for _, r := range recipes {
		out = append(out, newRecipeListItem(r))
	}
	return out
}

func newRecipeDetail(r *models.Recipe) RecipeDetail {
	return RecipeDetail{
		ID:          r.ID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Link:        r.Link,
		Image:       imageURL(r.Image),
		Tags:        newTagResponses(r.Tags),
		Ingredients: newIngredientResponses(r.Ingredients),
	}
}
