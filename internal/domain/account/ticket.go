package account

// KitchenTicket é a projeção de um item para a tela da cozinha
type KitchenTicket struct {
	Item         *Item  `json:"item"`
	TableNumber  *int   `json:"mesa_numero"`
	CustomerName string `json:"nome_cliente,omitempty"`
	WaitSeconds  int    `json:"tempo_espera"`
}
