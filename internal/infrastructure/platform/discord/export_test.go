package discord

var ClassifyEditError = classifyEditError
