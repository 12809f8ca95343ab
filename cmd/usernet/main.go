// Copyright 2026 usernet Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/usernet-io/usernet/base/log"
	"github.com/usernet-io/usernet/model"
	"go.uber.org/zap"
)

const versionName = "0.1.0"

var rootCommand = &cobra.Command{
	Use:   "usernet",
	Short: "Attention-pooled user scoring networks",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug, _ := cmd.Flags().GetBool("debug")
		log.SetLogger(cmd.Flags(), debug)
	},
}

var versionCommand = &cobra.Command{
	Use:   "version",
	Short: "Check the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(versionName)
	},
}

var initCommand = &cobra.Command{
	Use:   "init",
	Short: "Create a model from user and item id lists",
	Run: func(cmd *cobra.Command, args []string) {
		usersPath, _ := cmd.Flags().GetString("users")
		itemsPath, _ := cmd.Flags().GetString("items")
		outputPath, _ := cmd.Flags().GetString("output")
		embeddingDim, _ := cmd.Flags().GetInt("embedding-dim")
		featureDim, _ := cmd.Flags().GetInt("feature-dim")
		randomState, _ := cmd.Flags().GetInt64("random-state")

		users := readLines(usersPath)
		items := readLines(itemsPath)
		net := model.NewUserNet(users, items, model.Params{
			model.EmbeddingDim: embeddingDim,
			model.FeatureDim:   featureDim,
			model.RandomState:  randomState,
		})

		output := lo.Must1(os.Create(outputPath))
		defer output.Close()
		if err := net.Marshal(output); err != nil {
			log.Logger().Fatal("failed to write model", zap.Error(err))
		}
		log.Logger().Info("model created",
			zap.String("path", outputPath),
			zap.Int("users", len(users)),
			zap.Int("items", len(items)),
			zap.Int("embedding_dim", embeddingDim))
	},
}

var scoreCommand = &cobra.Command{
	Use:   "score USER_ID ITEM_ID...",
	Short: "Score candidate items for a user by the user's interacted items",
	Args:  cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		modelPath, _ := cmd.Flags().GetString("model")
		userId, itemIds := args[0], args[1:]

		input := lo.Must1(os.Open(modelPath))
		defer input.Close()
		net, err := model.UnmarshalUserNet(input)
		if err != nil {
			log.Logger().Fatal("failed to read model", zap.Error(err))
		}

		userVector, err := net.ScoreUser(userId, itemIds, nil)
		if err != nil {
			log.Logger().Fatal("failed to score user", zap.Error(err))
		}
		itemVectors, err := net.GetItemEmbeddings(itemIds)
		if err != nil {
			log.Logger().Fatal("failed to fetch item embeddings", zap.Error(err))
		}
		for i, score := range model.Score(userVector, itemVectors) {
			fmt.Printf("%s\t%f\n", itemIds[i], score)
		}
	},
}

func readLines(path string) []string {
	f := lo.Must1(os.Open(path))
	defer f.Close()
	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if line := scanner.Text(); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Logger().Fatal("failed to read file", zap.String("path", path), zap.Error(err))
	}
	return lines
}

func init() {
	rootCommand.PersistentFlags().Bool("debug", false, "use debug log mode")
	log.AddFlags(rootCommand.PersistentFlags())
	rootCommand.AddCommand(versionCommand)
	rootCommand.AddCommand(initCommand)
	rootCommand.AddCommand(scoreCommand)

	initCommand.Flags().String("users", "", "path of the user id list")
	initCommand.Flags().String("items", "", "path of the item id list")
	initCommand.Flags().StringP("output", "o", "usernet.bin", "path of the output model")
	initCommand.Flags().Int("embedding-dim", 128, "width of embedding vectors")
	initCommand.Flags().Int("feature-dim", 0, "width of raw item feature vectors")
	initCommand.Flags().Int64("random-state", 0, "random seed")
	lo.Must0(initCommand.MarkFlagRequired("users"))
	lo.Must0(initCommand.MarkFlagRequired("items"))

	scoreCommand.Flags().StringP("model", "m", "usernet.bin", "path of the model")
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		log.Logger().Fatal("failed to execute command", zap.Error(err))
	}
}
