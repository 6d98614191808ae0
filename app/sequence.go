package app

import (
	"encoding/json"
	"fmt"
	"strconv"
)

type CreateMealRequest struct {
	Meal       string  `json:"meal"`
	Cuisine    string  `json:"cuisine"`
	Price      float64 `json:"price"`
	Difficulty string  `json:"difficulty"`
}

type PrepCombatantRequest struct {
	Meal string `json:"meal"`
}

var (
	checkSuccess         = Check{Field: "status", Want: "success"}
	checkHealthy         = Check{Field: "status", Want: "healthy"}
	checkDBHealthy       = Check{Field: "database_status", Want: "healthy"}
	checkGoneAfterDelete = Check{Field: "status", Want: "success", ExpectMissing: true}
)

// SmokeSequence returns the fixed, ordered steps of a full smoketest run.
// Later steps depend on earlier ones (created meal ids, prepped
// combatants), so the order is part of the contract.
func SmokeSequence(leaderboardSort string) []Step {
	pasta := CreateMealRequest{Meal: "Pasta", Cuisine: "Italian", Price: 12.99, Difficulty: "MED"}
	tacos := CreateMealRequest{Meal: "Tacos", Cuisine: "Mexican", Price: 15.99, Difficulty: "HIGH"}
	padThai := CreateMealRequest{Meal: "Pad Thai", Cuisine: "Thai", Price: 8.99, Difficulty: "LOW"}

	// The store is empty at the start of a run, so the first created meal
	// gets id 1 and keeps it for the later delete and get steps.
	pastaID := 1
	expectedPasta := jsonBody(struct {
		ID int `json:"id"`
		CreateMealRequest
	}{ID: pastaID, CreateMealRequest: pasta})

	return []Step{
		{
			Name:         "health check",
			HTTPMethod:   "GET",
			RelativePath: "/health",
			Check:        checkHealthy,
		},
		{
			Name:         "database check",
			HTTPMethod:   "GET",
			RelativePath: "/db-check",
			Check:        checkDBHealthy,
		},
		createMealStep(pasta),
		createMealStep(tacos),
		createMealStep(padThai),
		{
			Name:          "get meal by id",
			HTTPMethod:    "GET",
			RelativePath:  "/get-meal-by-id/{id}",
			PathParams:    map[string]string{"id": strconv.Itoa(pastaID)},
			IntPathParams: []string{"id"},
			Check:         checkSuccess,
			ExpectedBody:  expectedPasta,
			BodyKey:       "meal",
		},
		{
			Name:         "get meal by name",
			HTTPMethod:   "GET",
			RelativePath: "/get-meal-by-name/{name}",
			PathParams:   map[string]string{"name": pasta.Meal},
			Check:        checkSuccess,
		},
		prepCombatantStep(pasta.Meal),
		prepCombatantStep(tacos.Meal),
		{
			Name:         "get combatants",
			HTTPMethod:   "GET",
			RelativePath: "/get-combatants",
			Check:        checkSuccess,
		},
		{
			Name:         "battle",
			HTTPMethod:   "GET",
			RelativePath: "/battle",
			Check:        checkSuccess,
		},
		{
			Name:         "clear combatants",
			HTTPMethod:   "POST",
			RelativePath: "/clear-combatants",
			Check:        checkSuccess,
		},
		{
			Name:         "leaderboard",
			HTTPMethod:   "GET",
			RelativePath: "/leaderboard?sort=" + leaderboardSort,
			Check:        checkSuccess,
		},
		{
			Name:          "delete meal",
			HTTPMethod:    "DELETE",
			RelativePath:  "/delete-meal/{id}",
			PathParams:    map[string]string{"id": strconv.Itoa(pastaID)},
			IntPathParams: []string{"id"},
			Check:         checkSuccess,
		},
		{
			Name:          "get deleted meal",
			HTTPMethod:    "GET",
			RelativePath:  "/get-meal-by-id/{id}",
			PathParams:    map[string]string{"id": strconv.Itoa(pastaID)},
			IntPathParams: []string{"id"},
			Check:         checkGoneAfterDelete,
		},
	}
}

func createMealStep(meal CreateMealRequest) Step {
	return Step{
		Name:         fmt.Sprintf("create meal %s", meal.Meal),
		HTTPMethod:   "POST",
		RelativePath: "/create-meal",
		RequestBody:  jsonBody(meal),
		Check:        checkSuccess,
	}
}

func prepCombatantStep(meal string) Step {
	return Step{
		Name:         fmt.Sprintf("prep combatant %s", meal),
		HTTPMethod:   "POST",
		RelativePath: "/prep-combatant",
		RequestBody:  jsonBody(PrepCombatantRequest{Meal: meal}),
		Check:        checkSuccess,
	}
}

func jsonBody(v interface{}) *string {
	b, _ := json.Marshal(v)
	s := string(b)

	return &s
}
