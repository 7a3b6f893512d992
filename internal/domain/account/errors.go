package account

import "github.com/hugohenrick/pdv-restaurante/pkg/apperror"

// Erros do ciclo de vida de contas e itens
var (
	ErrNotFound          = apperror.New(apperror.KindNotFound, "conta não encontrada")
	ErrItemNotFound      = apperror.New(apperror.KindNotFound, "item não encontrado")
	ErrNotOpen           = apperror.New(apperror.KindPrecondition, "conta não está aberta")
	ErrEmptyCustomerName = apperror.New(apperror.KindValidation, "informe o nome do cliente")
	ErrInvalidQuantity   = apperror.New(apperror.KindValidation, "quantidade deve ser positiva")
	ErrItemReference     = apperror.New(apperror.KindValidation, "informe exatamente um produto ou um combo")
	ErrInvalidTransition = apperror.New(apperror.KindInvalidTransition, "transição de status não permitida")
	ErrItemCommitted     = apperror.New(apperror.KindInvalidTransition, "apenas itens pendentes podem ser removidos")
	ErrItemsInProduction = apperror.New(apperror.KindPrecondition, "conta possui itens em produção ou prontos")
	ErrInvalidDiscount   = apperror.New(apperror.KindValidation, "desconto deve estar entre zero e o subtotal")
	ErrInvalidServiceFee = apperror.New(apperror.KindValidation, "taxa de serviço deve estar entre 0 e 100%")
	ErrPaymentMismatch   = apperror.New(apperror.KindValidation, "total dos pagamentos diferente do valor final")
	ErrInvalidPayment    = apperror.New(apperror.KindValidation, "pagamento inválido")
	ErrNoPayments        = apperror.New(apperror.KindValidation, "informe ao menos um pagamento")
	ErrTableAccountTaken = apperror.New(apperror.KindConflict, "mesa já possui conta aberta")
	ErrStale             = apperror.New(apperror.KindConflict, "conta alterada por outra operação, tente novamente")
)
