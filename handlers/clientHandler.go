package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/cashflow_guard/models"
)

const clientNotFound = "client not found"

func listClientsHandler(c *gin.Context) {
	clients, err := models.ListClients(c.Request.Context())
	if err != nil {
		respondError(c, err, clientNotFound)
		return
	}
	c.JSON(http.StatusOK, clients)
}

func getClientHandler(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	client, err := models.GetClient(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, clientNotFound)
		return
	}
	c.JSON(http.StatusOK, client)
}

func createClientHandler(c *gin.Context) {
	var input models.NewClient
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	client, err := models.CreateClient(c.Request.Context(), &input)
	if err != nil {
		respondError(c, err, clientNotFound)
		return
	}
	c.JSON(http.StatusCreated, client)
}

func updateClientHandler(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	var input models.UpdateClient
	if err := c.ShouldBindJSON(&input); err != nil {
		bindError(c, err)
		return
	}
	client, err := models.UpdateClientById(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, err, clientNotFound)
		return
	}
	c.JSON(http.StatusOK, client)
}

func deleteClientHandler(c *gin.Context) {
	id, ok := uuidParam(c, "id")
	if !ok {
		return
	}
	if err := models.DeleteClient(c.Request.Context(), id); err != nil {
		respondError(c, err, clientNotFound)
		return
	}
	c.Status(http.StatusNoContent)
}
