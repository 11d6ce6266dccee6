package routes

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"fleet-admin-api-server/config"
	"fleet-admin-api-server/internal/api/handlers"
	"fleet-admin-api-server/internal/api/middleware"
	"fleet-admin-api-server/internal/resolve"
	"fleet-admin-api-server/internal/socket"
	"fleet-admin-api-server/internal/storage"
	"fleet-admin-api-server/internal/store"
	"fleet-admin-api-server/internal/upload"
)

// SetupRouter wires stores, resolver, upload adapter and hub into the API.
func SetupRouter(
	cfg config.Config,
	db *mongo.Database,
	files storage.Storage,
	uploads *upload.Adapter,
	wsHub *socket.Hub,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	corsConfig := cors.DefaultConfig()
	if len(cfg.CORS.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	vehicleStore := store.NewMongoVehicles(db)
	departmentStore := store.NewMongoDepartments(db)
	employeeStore := store.NewMongoEmployees(db)
	brandStore := store.NewMongoBrands(db)
	insuranceStore := store.NewMongoInsurances(db)
	roadWorthStore := store.NewMongoRoadWorths(db)
	nextOfKinStore := store.NewMongoNextOfKins(db)

	resolver := &resolve.Resolver{
		Departments: departmentStore,
		Employees:   employeeStore,
		Brands:      brandStore,
		Insurances:  insuranceStore,
		RoadWorths:  roadWorthStore,
	}

	vehicleHandler := &handlers.VehicleHandler{
		Store:    vehicleStore,
		Resolver: resolver,
		Uploads:  uploads,
		Files:    files,
		Hub:      wsHub,
	}
	departmentHandler := &handlers.DepartmentHandler{Store: departmentStore}
	employeeHandler := &handlers.EmployeeHandler{Store: employeeStore, Uploads: uploads, Files: files, Hub: wsHub}
	brandHandler := &handlers.BrandHandler{Store: brandStore}
	insuranceHandler := &handlers.InsuranceHandler{Store: insuranceStore}
	roadWorthHandler := &handlers.RoadWorthHandler{Store: roadWorthStore}
	nextOfKinHandler := &handlers.NextOfKinHandler{Store: nextOfKinStore}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub}

	// Uploaded images are referenced from documents as paths relative to
	// the uploads root and served from here.
	router.Static("/uploads", cfg.Uploads.Root)

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/ws", webSocketHandler.ServeWs)

		vehicles := apiV1.Group("/vehicles")
		{
			vehicles.GET("/", vehicleHandler.GetAllVehicles)
			vehicles.POST("/", vehicleHandler.CreateVehicle)
			vehicles.GET("/status/:status", vehicleHandler.GetVehiclesByStatus)
			vehicles.GET("/department/:departmentId", vehicleHandler.GetVehiclesByDepartment)
			vehicles.GET("/driver/:driverId", vehicleHandler.GetVehiclesByDriver)
			vehicles.GET("/brand/:brandId", vehicleHandler.GetVehiclesByBrand)
			vehicles.GET("/pool/available", vehicleHandler.GetPoolVehicles)
			vehicles.GET("/:id", vehicleHandler.GetVehicle)
			vehicles.PUT("/:id", vehicleHandler.UpdateVehicle)
			vehicles.DELETE("/:id", vehicleHandler.DeleteVehicle)
			vehicles.PUT("/:id/status", vehicleHandler.UpdateStatus)
			vehicles.PUT("/:id/mileage", vehicleHandler.UpdateMileage)
			vehicles.PUT("/:id/pictures", vehicleHandler.RemovePicture)
			vehicles.PUT("/:id/driver", vehicleHandler.AssignDriver)
			vehicles.DELETE("/:id/driver", vehicleHandler.UnassignDriver)
		}

		departments := apiV1.Group("/departments")
		{
			departments.POST("/", departmentHandler.CreateDepartment)
			departments.GET("/", departmentHandler.GetAllDepartments)
			departments.GET("/:id", departmentHandler.GetDepartment)
			departments.PUT("/:id", departmentHandler.UpdateDepartment)
			departments.DELETE("/:id", departmentHandler.DeleteDepartment)
		}

		employees := apiV1.Group("/employees")
		{
			employees.POST("/", employeeHandler.CreateEmployee)
			employees.GET("/", employeeHandler.GetAllEmployees)
			employees.GET("/department/:departmentId", employeeHandler.GetEmployeesByDepartment)
			employees.GET("/:id", employeeHandler.GetEmployee)
			employees.PUT("/:id", employeeHandler.UpdateEmployee)
			employees.DELETE("/:id", employeeHandler.DeleteEmployee)
		}

		brands := apiV1.Group("/brands")
		{
			brands.POST("/", brandHandler.CreateBrand)
			brands.GET("/", brandHandler.GetAllBrands)
			brands.GET("/name/:name", brandHandler.GetBrandModels)
			brands.GET("/:id", brandHandler.GetBrand)
			brands.PUT("/:id", brandHandler.UpdateBrand)
			brands.DELETE("/:id", brandHandler.DeleteBrand)
		}

		insurance := apiV1.Group("/insurance")
		{
			insurance.POST("/", insuranceHandler.CreateInsurance)
			insurance.GET("/", insuranceHandler.GetAllInsurances)
			insurance.GET("/:id", insuranceHandler.GetInsurance)
			insurance.PUT("/:id", insuranceHandler.UpdateInsurance)
			insurance.DELETE("/:id", insuranceHandler.DeleteInsurance)
		}

		roadworth := apiV1.Group("/roadworth")
		{
			roadworth.POST("/", roadWorthHandler.CreateRoadWorth)
			roadworth.GET("/", roadWorthHandler.GetAllRoadWorths)
			roadworth.GET("/:id", roadWorthHandler.GetRoadWorth)
			roadworth.PUT("/:id", roadWorthHandler.UpdateRoadWorth)
			roadworth.DELETE("/:id", roadWorthHandler.DeleteRoadWorth)
		}

		nextOfKin := apiV1.Group("/next-of-kin")
		{
			nextOfKin.POST("/", nextOfKinHandler.CreateNextOfKin)
			nextOfKin.GET("/", nextOfKinHandler.GetAllNextOfKins)
			nextOfKin.GET("/employee/:employeeId", nextOfKinHandler.GetNextOfKinsByEmployee)
			nextOfKin.GET("/:id", nextOfKinHandler.GetNextOfKin)
			nextOfKin.PUT("/:id", nextOfKinHandler.UpdateNextOfKin)
			nextOfKin.DELETE("/:id", nextOfKinHandler.DeleteNextOfKin)
		}
	}

	return router
}
