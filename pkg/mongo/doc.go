// Package mongo connects to MongoDB with the official v2 driver. The database
// it returns backs session.MongoStore.
//
//	var cfg mongo.Config
//	config.MustLoad(&cfg)
//
//	db, err := mongo.NewWithDatabase(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer db.Client().Disconnect(context.Background())
//
//	store := session.NewMongoStore(db)
//	if err := store.EnsureIndexes(ctx); err != nil {
//	    return err
//	}
//
// Settings come from MONGODB_* environment variables. New retries the initial
// connection, which helps when the service and the database start together.
package mongo
