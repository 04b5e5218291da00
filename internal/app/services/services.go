// Package services holds the application logic behind the HTTP controllers.
//
// Services defined in this package:
// - PredictionService: Runs the cutoff prediction pipeline and shapes its response
// - BranchService: Lists the branches a caller can search
package services
