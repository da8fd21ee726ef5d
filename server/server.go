package server

import (
	"time"

	"recipe-server/confs"
	"recipe-server/db"
	"recipe-server/handlers"
	httpHandler "recipe-server/handlers/http"
	"recipe-server/repositories"
	"recipe-server/services"
	"recipe-server/usecases"
	"recipe-server/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps are the injected collaborators the route table is built from.
// Production wiring uses the postgres repositories; tests substitute
// in-memory fakes.
type Deps struct {
	Users       repositories.UserRepository
	Tokens      repositories.TokenRepository
	Ingredients repositories.IngredientRepository
	Recipes     repositories.RecipeRepository
	TokenTTL    time.Duration
}

type Server struct {
	app *gin.Engine
	db  db.Database
}

func NewServer(database db.Database) *Server {
	return &Server{
		app: gin.Default(),
		db:  database,
	}
}

func (s *Server) Start() {
	Setup(s.app, Deps{
		Users:       repositories.NewUserPgRepository(s.db),
		Tokens:      repositories.NewTokenPgRepository(s.db),
		Ingredients: repositories.NewIngredientPgRepository(s.db),
		Recipes:     repositories.NewRecipePgRepository(s.db),
		TokenTTL:    confs.TokenTTL(),
	})

	if err := s.app.Run(confs.ServerAddr()); err != nil {
		panic(err)
	}
}

// Setup wires usecases and the route table onto a gin engine. Every
// catalog route sits behind token auth; ownership filtering happens in
// the repositories, so no handler can forget it.
func Setup(app *gin.Engine, deps Deps) {
	// Setup CORS middleware
	config := cors.DefaultConfig()
	config.AllowAllOrigins = true // Allow all origins for development
	config.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	app.Use(cors.New(config))

	// Setup healthcheck route
	app.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "OK",
		})
	})

	// Event feed plumbing
	manager := ws.NewManager()
	events := services.NewEventBus(manager)

	// Initialize use cases
	userUseCase := usecases.NewUserUseCase(deps.Users)
	tokenUseCase := usecases.NewTokenUseCase(deps.Tokens, deps.Users, deps.TokenTTL)
	ingredientUseCase := usecases.NewIngredientUseCase(deps.Ingredients, events)
	recipeUseCase := usecases.NewRecipeUseCase(deps.Recipes, deps.Ingredients, events)

	// Initialize handlers
	userHandler := httpHandler.NewUserHandler(userUseCase, tokenUseCase)
	ingredientHandler := httpHandler.NewIngredientHandler(ingredientUseCase)
	recipeHandler := httpHandler.NewRecipeHandler(recipeUseCase)
	eventsHandler := handlers.NewEventsHandler(manager, tokenUseCase)

	requireAuth := httpHandler.TokenAuth(tokenUseCase)

	// User routes
	user := app.Group("/user")
	{
		user.POST("/create", userHandler.Create)
		user.POST("/token", userHandler.Token)
		user.GET("/me", requireAuth, userHandler.Me)
		user.PATCH("/me", requireAuth, userHandler.UpdateMe)
		user.POST("/me", requireAuth, userHandler.MeNotAllowed)
	}

	// Recipe catalog routes, every one behind token auth
	recipe := app.Group("/recipe", requireAuth)
	{
		ingredients := recipe.Group("/ingredients")
		{
			ingredients.GET("", ingredientHandler.List)
			ingredients.POST("", ingredientHandler.Create)
			ingredients.GET("/:id", ingredientHandler.Get)
			ingredients.PATCH("/:id", ingredientHandler.Update)
			ingredients.DELETE("/:id", ingredientHandler.Delete)
		}

		recipes := recipe.Group("/recipes")
		{
			recipes.GET("", recipeHandler.List)
			recipes.POST("", recipeHandler.Create)
			recipes.GET("/:id", recipeHandler.Get)
			recipes.PATCH("/:id", recipeHandler.Update)
			recipes.DELETE("/:id", recipeHandler.Delete)
		}
	}

	// Event feed (token in query string; see handler)
	app.GET("/ws/events", eventsHandler.HandleEvents)
	app.GET("/ws/connected", eventsHandler.ConnectedUsers)
}
