package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/hugohenrick/pdv-restaurante/internal/service/kitchen"
	"github.com/hugohenrick/pdv-restaurante/internal/service/order"
	"github.com/hugohenrick/pdv-restaurante/pkg/logger"
)

const wsWriteTimeout = 5 * time.Second

// KitchenController gerencia a tela da cozinha
type KitchenController struct {
	orders   *order.Service
	board    *kitchen.Board
	log      logger.Logger
	upgrader websocket.Upgrader
}

// NewKitchenController cria uma nova instância de KitchenController.
// checkOrigin nulo aceita qualquer origem.
func NewKitchenController(orders *order.Service, board *kitchen.Board, log logger.Logger, checkOrigin func(r *http.Request) bool) *KitchenController {
	if checkOrigin == nil {
		checkOrigin = func(r *http.Request) bool { return true }
	}
	return &KitchenController{
		orders: orders,
		board:  board,
		log:    log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
	}
}

// Tickets retorna a fila atual da cozinha
// @Summary Fila da cozinha
// @Tags kitchen
// @Produce json
// @Security Bearer
// @Success 200 {object} kitchen.Snapshot
// @Router /kitchen/tickets [get]
func (c *KitchenController) Tickets(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, c.board.Snapshot())
}

// Stream envia a fila da cozinha a cada segundo por websocket
// @Summary Fila da cozinha em tempo real
// @Tags kitchen
// @Security Bearer
// @Param token query string false "Token JWT quando o cabeçalho não pode ser enviado"
// @Router /kitchen/ws [get]
func (c *KitchenController) Stream(ctx *gin.Context) {
	conn, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.log.Warn("Falha ao abrir websocket da cozinha", "error", err)
		return
	}
	defer conn.Close()

	snapshots, unsubscribe := c.board.Subscribe()
	defer unsubscribe()

	// O cliente não envia mensagens; a leitura só detecta o fechamento
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if err := c.write(conn, c.board.Snapshot()); err != nil {
		return
	}
	for {
		select {
		case <-closed:
			return
		case <-ctx.Request.Context().Done():
			return
		case snap, ok := <-snapshots:
			if !ok {
				_ = conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "servidor encerrando"),
					time.Now().Add(wsWriteTimeout))
				return
			}
			if err := c.write(conn, snap); err != nil {
				c.log.Debug("Websocket da cozinha encerrado", "error", err)
				return
			}
		}
	}
}

func (c *KitchenController) write(conn *websocket.Conn, snap kitchen.Snapshot) error {
	if err := conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout)); err != nil {
		return err
	}
	return conn.WriteJSON(snap)
}

// MarkReady marca o item como pronto
// @Summary Marca item como pronto
// @Tags kitchen
// @Produce json
// @Security Bearer
// @Param id path string true "ID do item"
// @Success 200 {object} account.Item
// @Failure 409 {object} dto.ErrorResponse
// @Router /kitchen/items/{id}/ready [patch]
func (c *KitchenController) MarkReady(ctx *gin.Context) {
	item, err := c.orders.MarkReady(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "Erro ao marcar item como pronto", err)
		return
	}
	ctx.JSON(http.StatusOK, item)
}

// MarkDelivered marca o item como entregue
// @Summary Marca item como entregue
// @Tags kitchen
// @Produce json
// @Security Bearer
// @Param id path string true "ID do item"
// @Success 200 {object} account.Item
// @Failure 409 {object} dto.ErrorResponse
// @Router /kitchen/items/{id}/delivered [patch]
func (c *KitchenController) MarkDelivered(ctx *gin.Context) {
	item, err := c.orders.MarkDelivered(ctx, ctx.Param("id"))
	if err != nil {
		respondError(ctx, "Erro ao marcar item como entregue", err)
		return
	}
	ctx.JSON(http.StatusOK, item)
}
