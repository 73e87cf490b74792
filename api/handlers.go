package api

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(store SectionStore, rt router) *routeHandlers {
	return &routeHandlers{
		healthHandler:  newHealthHandler(rt.startupTime),
		sectionHandler: newSectionHandler(store),
		editorHandler:  newEditorHandler(store, rt.editors, rt.assets),
		pageHandler:    newPageHandler(store, rt.renderer),
		uploadHandler:  newUploadHandler(rt.uploader),
	}
}
