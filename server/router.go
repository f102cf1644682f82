package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/batiplan/batiplan/internal/conf"
	"github.com/batiplan/batiplan/internal/pdfrender"
	"github.com/batiplan/batiplan/server/handles"
	"github.com/batiplan/batiplan/server/middlewares"
)

func Init(e *gin.Engine) {
	e.Use(cors.Default())
	handles.Renderer = pdfrender.NewClient(conf.Conf.Renderer)

	api := e.Group("/api")
	api.POST("/auth/login", handles.Login)

	g := api.Group("/planning")
	g.Use(middlewares.Auth)
	g.GET("/chantiers", handles.ListChantiers)
	g.GET("/ouvriers-internes", handles.ListOuvriers)
	g.GET("/soustraitants", handles.ListSousTraitants)
	g.GET("/sav-tickets", handles.ListSavTickets)
	g.GET("/tasks", handles.ListTasks)
	g.POST("/tasks", handles.CreateTask)
	g.PUT("/tasks/:id", handles.UpdateTask)
	g.PATCH("/tasks/:id", handles.PatchTask)
	g.DELETE("/tasks/:id", handles.DeleteTask)
	g.POST("/export-pdf", handles.ExportPlanningPDF)
}
