// Package main
//
// @title           Estante API
// @version         1.0
// @description     Book catalog API with JWT auth and PIX payments via an external gateway.
// @BasePath        /v1
//
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
// @description Type "Bearer {token}" to authenticate.
package main
