package rest

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"voyager.com/blackjack/game"
	"voyager.com/blackjack/nats"
	"voyager.com/blackjack/stats"
	"voyager.com/blackjack/util"
)

var restLogger = log.With().Str("logger_name", "rest::rest").Logger()
var natsGameManager *nats.GameManager

//
// APP error definition
//
type appError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type newTableReq struct {
	Code           string `json:"code"`
	NumDecks       int    `json:"numDecks"`
	HumanSeat      *bool  `json:"humanSeat"`
	PlayTimeoutSec int    `json:"playTimeoutSec"`
}

type playerMoveReq struct {
	Code   string `json:"code"`
	Action string `json:"action"`
}

// RunRestServer mirrors the NATS surface for clients that only speak
// HTTP, and serves the aggregate reports. Blocks.
func RunRestServer(gameManager *nats.GameManager) {
	natsGameManager = gameManager
	r := gin.Default()

	r.POST("/new-table", newTable)
	r.POST("/end-table", endTable)
	r.POST("/begin-round", beginRound)
	r.POST("/player-move", playerMove)
	r.POST("/reset-shoe", resetShoe)
	r.POST("/save-stats", saveStats)
	r.GET("/table-status", tableStatus)
	r.GET("/reports", reports)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf(":%d", util.Env.GetRestPort())
	restLogger.Info().Msgf("REST server listening on %s", addr)
	if err := r.Run(addr); err != nil {
		restLogger.Fatal().Msgf("REST server returned: %v", err)
	}
}

func tableFromQuery(c *gin.Context) (*game.Game, bool) {
	code := c.Query("code")
	if code == "" {
		g := natsGameManager.DefaultTable()
		if g == nil {
			c.JSON(http.StatusNotFound, appError{Code: http.StatusNotFound, Message: "No table exists"})
			return nil, false
		}
		return g, true
	}
	g, ok := natsGameManager.GetTable(code)
	if !ok {
		c.JSON(http.StatusNotFound, appError{Code: http.StatusNotFound, Message: fmt.Sprintf("Unknown table: %s", code)})
		return nil, false
	}
	return g, true
}

func newTable(c *gin.Context) {
	var req newTableReq
	if err := c.ShouldBindJSON(&req); err != nil {
		// An empty or missing body means all defaults.
		req = newTableReq{}
	}
	config := game.DefaultTableConfig()
	if req.Code != "" {
		config.Code = req.Code
	}
	if req.NumDecks > 0 {
		config.NumDecks = req.NumDecks
	}
	if req.HumanSeat != nil {
		config.HumanSeat = *req.HumanSeat
	}
	if req.PlayTimeoutSec > 0 {
		config.PlayTimeoutSec = req.PlayTimeoutSec
	}
	g, err := natsGameManager.NewTable(config)
	if err != nil {
		c.JSON(http.StatusBadRequest, appError{Code: http.StatusBadRequest, Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"tableCode": g.TableCode(),
		"tableId":   g.TableID(),
	})
}

// endTable stops the table loop and persists its session state.
func endTable(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, appError{Code: http.StatusBadRequest, Message: "Missing table code"})
		return
	}
	if err := natsGameManager.EndTable(code); err != nil {
		c.JSON(http.StatusNotFound, appError{Code: http.StatusNotFound, Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "table ended"})
}

func beginRound(c *gin.Context) {
	g, ok := tableFromQuery(c)
	if !ok {
		return
	}
	if err := g.BeginRound(); err != nil {
		c.JSON(http.StatusConflict, appError{Code: http.StatusConflict, Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "round started"})
}

func playerMove(c *gin.Context) {
	var req playerMoveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, appError{Code: http.StatusBadRequest, Message: "Invalid move payload"})
		return
	}
	var g *game.Game
	if req.Code == "" {
		g = natsGameManager.DefaultTable()
	} else {
		g, _ = natsGameManager.GetTable(req.Code)
	}
	if g == nil {
		c.JSON(http.StatusNotFound, appError{Code: http.StatusNotFound, Message: "Unknown table"})
		return
	}
	if err := g.SubmitHumanMove(req.Action); err != nil {
		status := http.StatusBadRequest
		if game.IsNoHumanSeat(err) {
			status = http.StatusConflict
		}
		c.JSON(status, appError{Code: status, Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "move accepted"})
}

func resetShoe(c *gin.Context) {
	g, ok := tableFromQuery(c)
	if !ok {
		return
	}
	if err := g.ResetShoe(); err != nil {
		c.JSON(http.StatusConflict, appError{Code: http.StatusConflict, Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"shoeRemaining": g.ShoeRemaining()})
}

func saveStats(c *gin.Context) {
	if err := natsGameManager.SaveStats(); err != nil {
		c.JSON(http.StatusInternalServerError, appError{Code: http.StatusInternalServerError, Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

func tableStatus(c *gin.Context) {
	g, ok := tableFromQuery(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"tableCode":     g.TableCode(),
		"roundNum":      g.RoundNum(),
		"phase":         string(g.Phase()),
		"shoeRemaining": g.ShoeRemaining(),
		"sealedRounds":  g.Aggregator().SealedRoundCount(),
	})
}

// reports returns the three aggregate vectors, each ordered
// [croupier, ai1, ai2, human].
func reports(c *gin.Context) {
	g, ok := tableFromQuery(c)
	if !ok {
		return
	}
	aggregator := g.Aggregator()
	c.JSON(http.StatusOK, gin.H{
		"entities":               stats.EntityOrder,
		"winPercentage":          aggregator.WinPercentages(),
		"decisionQuality":        aggregator.DecisionQualityPercentages(),
		"standValueDistribution": aggregator.StandValueDistributions(),
	})
}
