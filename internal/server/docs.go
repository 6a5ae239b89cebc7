package server

// @title Gamepanel API
// @version 1.0
// @description Hosting provider dashboard API for Gamepanel

// @contact.name API Support

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api
// @schemes http https
