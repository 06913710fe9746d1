package server

// Данный сервер просто объединяет специфичные HTTP сервера, отвечающие за
// обработку конкретных сущностей.
type Server struct {
	QuoteServer
	LockServer
	OrderServer
}

func NewServer(
	quoteServer QuoteServer,
	lockServer LockServer,
	orderServer OrderServer,
) Server {
	return Server{
		QuoteServer: quoteServer,
		LockServer:  lockServer,
		OrderServer: orderServer,
	}
}
