package httpapi

import (
	"github.com/gofiber/fiber/v2"

	"github.com/animeku/anistream/internal/metadata"
	"github.com/animeku/anistream/internal/models"
	"github.com/animeku/anistream/internal/resolver"
)

// RegisterRoutes wires the metadata proxy and the stream resolver onto the app.
func RegisterRoutes(app *fiber.App, meta metadata.Client, streams resolver.Resolver) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	// Selectable servers, in display order, for the front-end's picker.
	api.Get("/servers", func(c *fiber.Ctx) error {
		servers := models.Servers()
		names := make([]string, 0, len(servers))
		for _, s := range servers {
			names = append(names, s.String())
		}
		return c.JSON(fiber.Map{"data": names})
	})

	// Literal routes are registered before /anime/:id so they take precedence.
	api.Get("/anime/top", func(c *fiber.Ctx) error {
		list, err := meta.TopAnime(c.UserContext(), c.QueryInt("page", 1))
		if err != nil {
			return err
		}
		return c.JSON(list)
	})

	api.Get("/anime/season", func(c *fiber.Ctx) error {
		list, err := meta.SeasonNow(c.UserContext(), c.QueryInt("page", 1))
		if err != nil {
			return err
		}
		return c.JSON(list)
	})

	api.Get("/anime/search", func(c *fiber.Ctx) error {
		query := c.Query("q")
		if query == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Missing search query")
		}
		list, err := meta.SearchAnime(c.UserContext(), query, c.QueryInt("page", 1))
		if err != nil {
			return err
		}
		return c.JSON(list)
	})

	api.Get("/anime/:id", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid anime id")
		}
		anime, err := meta.AnimeByID(c.UserContext(), id)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"data": anime})
	})

	api.Get("/anime/:id/episodes", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid anime id")
		}
		list, err := meta.Episodes(c.UserContext(), id, c.QueryInt("page", 1))
		if err != nil {
			return err
		}
		return c.JSON(list)
	})

	api.Get("/stream", streamHandler(meta, streams))
}

// streamHandler resolves one playback attempt. The anime record is looked up
// when animeId is supplied, giving the resolver all three title variants plus
// the trailer embed reference; the bare title parameter is kept for
// compatibility with the old backend contract (no trailer support there).
func streamHandler(meta metadata.Client, streams resolver.Resolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		serverName := c.Query("server")
		title := c.Query("title")
		animeID := c.QueryInt("animeId", 0)

		if serverName == "" || (title == "" && animeID == 0) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Missing server or title",
			})
		}

		server, err := models.ParseServer(serverName)
		if err != nil {
			return err
		}

		req := resolver.Request{
			Server:  server,
			Episode: c.QueryInt("episode", 1),
			Titles:  models.Titles{Default: title},
		}
		if animeID > 0 {
			anime, err := meta.AnimeByID(c.UserContext(), animeID)
			if err != nil {
				return err
			}
			req.Titles = anime.TitleVariants()
			req.Trailer = anime.Trailer.EmbedURL
		}

		// Every non-trailer strategy builds queries from the titles; a record
		// with no usable variant cannot be resolved.
		if server != models.ServerTrailer && req.Titles.IsEmpty() {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "Missing server or title",
			})
		}

		result := streams.Resolve(c.UserContext(), req)
		if result.Success {
			return c.JSON(result)
		}

		status := fiber.StatusNotFound
		if result.Message == resolver.MsgScraperConnect {
			status = fiber.StatusBadGateway
		}

		response := fiber.Map{
			"success": false,
			"message": result.Message,
		}
		if server != models.ServerTrailer {
			response["fallbackUrl"] = streams.FallbackURL(server, req.Titles.Preferred())
		}
		return c.Status(status).JSON(response)
	}
}
