package main

// @title           PDV Restaurante API
// @version         1.0
// @description     API do ponto de venda do restaurante: mesas, contas, cozinha e caixa

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Cabeçalho de autenticação JWT usando o esquema Bearer. Exemplo: "Bearer {token}"
