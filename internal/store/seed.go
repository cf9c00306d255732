package store

import (
	"github.com/flytipwatch/impact-planner/internal/store/model"
)

// defaultCoefficients is the built-in UK county metrics dataset. Dense urban
// regions carry higher air-quality and quality-of-life impact scores than
// rural counties.
func defaultCoefficients() []model.RegionCoefficient {
	return []model.RegionCoefficient{
		{Region: "Greater London", AirQualityImpact: 0.85, Co2EmissionKg: 52.0, QualityOfLifeImpact: 0.72},
		{Region: "Greater Manchester", AirQualityImpact: 0.78, Co2EmissionKg: 48.5, QualityOfLifeImpact: 0.66},
		{Region: "West Midlands", AirQualityImpact: 0.76, Co2EmissionKg: 47.0, QualityOfLifeImpact: 0.64},
		{Region: "West Yorkshire", AirQualityImpact: 0.71, Co2EmissionKg: 44.0, QualityOfLifeImpact: 0.58},
		{Region: "Merseyside", AirQualityImpact: 0.70, Co2EmissionKg: 43.5, QualityOfLifeImpact: 0.60},
		{Region: "South Yorkshire", AirQualityImpact: 0.68, Co2EmissionKg: 42.0, QualityOfLifeImpact: 0.56},
		{Region: "Tyne and Wear", AirQualityImpact: 0.66, Co2EmissionKg: 41.0, QualityOfLifeImpact: 0.55},
		{Region: "Lancashire", AirQualityImpact: 0.58, Co2EmissionKg: 38.0, QualityOfLifeImpact: 0.48},
		{Region: "Kent", AirQualityImpact: 0.55, Co2EmissionKg: 37.0, QualityOfLifeImpact: 0.45},
		{Region: "Essex", AirQualityImpact: 0.56, Co2EmissionKg: 37.5, QualityOfLifeImpact: 0.46},
		{Region: "Hampshire", AirQualityImpact: 0.50, Co2EmissionKg: 34.0, QualityOfLifeImpact: 0.40},
		{Region: "Surrey", AirQualityImpact: 0.48, Co2EmissionKg: 33.0, QualityOfLifeImpact: 0.36},
		{Region: "Hertfordshire", AirQualityImpact: 0.49, Co2EmissionKg: 33.5, QualityOfLifeImpact: 0.38},
		{Region: "Berkshire", AirQualityImpact: 0.47, Co2EmissionKg: 32.5, QualityOfLifeImpact: 0.35},
		{Region: "Buckinghamshire", AirQualityImpact: 0.44, Co2EmissionKg: 31.0, QualityOfLifeImpact: 0.33},
		{Region: "Oxfordshire", AirQualityImpact: 0.43, Co2EmissionKg: 30.5, QualityOfLifeImpact: 0.32},
		{Region: "Gloucestershire", AirQualityImpact: 0.40, Co2EmissionKg: 29.0, QualityOfLifeImpact: 0.30},
		{Region: "Wiltshire", AirQualityImpact: 0.38, Co2EmissionKg: 28.0, QualityOfLifeImpact: 0.28},
		{Region: "Somerset", AirQualityImpact: 0.36, Co2EmissionKg: 27.0, QualityOfLifeImpact: 0.27},
		{Region: "Devon", AirQualityImpact: 0.34, Co2EmissionKg: 26.0, QualityOfLifeImpact: 0.25},
		{Region: "Cornwall", AirQualityImpact: 0.30, Co2EmissionKg: 24.0, QualityOfLifeImpact: 0.22},
		{Region: "Dorset", AirQualityImpact: 0.35, Co2EmissionKg: 26.5, QualityOfLifeImpact: 0.26},
		{Region: "East Sussex", AirQualityImpact: 0.46, Co2EmissionKg: 32.0, QualityOfLifeImpact: 0.37},
		{Region: "West Sussex", AirQualityImpact: 0.45, Co2EmissionKg: 31.5, QualityOfLifeImpact: 0.34},
		{Region: "Norfolk", AirQualityImpact: 0.33, Co2EmissionKg: 25.5, QualityOfLifeImpact: 0.24},
		{Region: "Suffolk", AirQualityImpact: 0.32, Co2EmissionKg: 25.0, QualityOfLifeImpact: 0.23},
		{Region: "Cambridgeshire", AirQualityImpact: 0.42, Co2EmissionKg: 30.0, QualityOfLifeImpact: 0.31},
		{Region: "Bedfordshire", AirQualityImpact: 0.45, Co2EmissionKg: 31.5, QualityOfLifeImpact: 0.36},
		{Region: "Northamptonshire", AirQualityImpact: 0.46, Co2EmissionKg: 32.0, QualityOfLifeImpact: 0.38},
		{Region: "Leicestershire", AirQualityImpact: 0.52, Co2EmissionKg: 35.0, QualityOfLifeImpact: 0.42},
		{Region: "Nottinghamshire", AirQualityImpact: 0.54, Co2EmissionKg: 36.0, QualityOfLifeImpact: 0.44},
		{Region: "Derbyshire", AirQualityImpact: 0.48, Co2EmissionKg: 33.0, QualityOfLifeImpact: 0.39},
		{Region: "Staffordshire", AirQualityImpact: 0.51, Co2EmissionKg: 34.5, QualityOfLifeImpact: 0.41},
		{Region: "Shropshire", AirQualityImpact: 0.31, Co2EmissionKg: 24.5, QualityOfLifeImpact: 0.23},
		{Region: "Herefordshire", AirQualityImpact: 0.29, Co2EmissionKg: 23.5, QualityOfLifeImpact: 0.21},
		{Region: "Worcestershire", AirQualityImpact: 0.41, Co2EmissionKg: 29.5, QualityOfLifeImpact: 0.31},
		{Region: "Warwickshire", AirQualityImpact: 0.44, Co2EmissionKg: 31.0, QualityOfLifeImpact: 0.34},
		{Region: "Cheshire", AirQualityImpact: 0.47, Co2EmissionKg: 32.5, QualityOfLifeImpact: 0.37},
		{Region: "Cumbria", AirQualityImpact: 0.27, Co2EmissionKg: 22.5, QualityOfLifeImpact: 0.20},
		{Region: "Durham", AirQualityImpact: 0.53, Co2EmissionKg: 35.5, QualityOfLifeImpact: 0.43},
		{Region: "North Yorkshire", AirQualityImpact: 0.35, Co2EmissionKg: 26.5, QualityOfLifeImpact: 0.25},
		{Region: "East Riding of Yorkshire", AirQualityImpact: 0.37, Co2EmissionKg: 27.5, QualityOfLifeImpact: 0.28},
		{Region: "Lincolnshire", AirQualityImpact: 0.34, Co2EmissionKg: 26.0, QualityOfLifeImpact: 0.26},
	}
}
